package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

type fakeClient struct {
	reply   string
	err     error
	prompts []string
	tiers   []ModelTier
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.reply, f.err
}

func (f *fakeClient) Close() error { return nil }

func draftWithCerts() *types.CVData {
	cv := types.NewCVData()
	cv.Profile = types.PersonalInfo{FullName: "Ada Lovelace", Email: "ada@example.com"}
	cv.Certifications = []types.Certification{
		{ID: "c1", Name: "AWS Solutions Architect"},
		{ID: "c2", Name: "CKA"},
	}
	return cv
}

func decode(t *testing.T, resp *types.APIResponse) *types.CVData {
	t.Helper()
	var doc types.CVData
	require.NoError(t, json.Unmarshal(resp.Data, &doc))
	return &doc
}

func TestCVEnhancer_PromptCarriesDraftAndMode(t *testing.T) {
	client := &fakeClient{reply: `{"profile": {"full_name": "Ada Lovelace", "email": "ada@example.com"}, "certifications": [{"id": "c1", "name": "AWS Solutions Architect"}, {"id": "c2", "name": "CKA"}]}`}
	e := NewCVEnhancer(client, TierAdvanced, nil)

	resp, err := e.EnhanceCV(context.Background(), &types.EnhanceRequest{CV: draftWithCerts(), Mode: types.ModeAIInterview})
	require.NoError(t, err)
	require.True(t, resp.Success)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `"full_name": "Ada Lovelace"`)
	assert.Contains(t, client.prompts[0], "interview questions")
	assert.NotContains(t, client.prompts[0], "{{.")
	assert.Equal(t, []ModelTier{TierAdvanced}, client.tiers)

	require.NotNil(t, resp.CertificationsPreserved)
	assert.True(t, *resp.CertificationsPreserved)
	assert.Empty(t, resp.Warnings)
}

func TestCVEnhancer_RestoresDroppedCertifications(t *testing.T) {
	client := &fakeClient{reply: "```json\n" + `{"profile": {"full_name": "Ada"}, "certifications": [{"name": "cka"}], "ai_insights": {"ats_score": 77}}` + "\n```"}
	e := NewCVEnhancer(client, TierStandard, nil)

	resp, err := e.EnhanceCV(context.Background(), &types.EnhanceRequest{CV: draftWithCerts()})
	require.NoError(t, err)
	require.True(t, resp.Success)

	doc := decode(t, resp)
	require.Len(t, doc.Certifications, 2)
	assert.Equal(t, "cka", doc.Certifications[0].Name)
	assert.Equal(t, "c1", doc.Certifications[1].ID)
	assert.True(t, *resp.CertificationsPreserved)
	assert.Len(t, resp.Warnings, 1)

	insights, ok := doc.AIInsights.Get()
	require.True(t, ok)
	assert.Equal(t, 77, insights.ATSScore)
}

func TestCVEnhancer_ReportsDroppedWhenRestoreDisabled(t *testing.T) {
	client := &fakeClient{reply: `{"profile": {"full_name": "Ada"}}`}
	e := NewCVEnhancer(client, TierStandard, nil)
	e.RestoreCertifications = false

	resp, err := e.EnhanceCV(context.Background(), &types.EnhanceRequest{CV: draftWithCerts()})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.False(t, *resp.CertificationsPreserved)
	assert.Empty(t, decode(t, resp).Certifications)
}

func TestCVEnhancer_InvalidModelOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "I cannot do that"},
		{"missing profile", `{"education": []}`},
		{"wrong type", `{"profile": {}, "skills": "lots"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewCVEnhancer(&fakeClient{reply: tt.reply}, TierStandard, nil)
			resp, err := e.EnhanceCV(context.Background(), &types.EnhanceRequest{CV: draftWithCerts()})
			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.Equal(t, "the model returned an invalid CV document", resp.Message)
		})
	}
}

func TestCVEnhancer_ClientError(t *testing.T) {
	boom := errors.New("quota exceeded")
	e := NewCVEnhancer(&fakeClient{err: boom}, TierStandard, nil)

	_, err := e.EnhanceCV(context.Background(), &types.EnhanceRequest{CV: draftWithCerts()})
	assert.ErrorIs(t, err, boom)
}

func TestCVEnhancer_MissingCV(t *testing.T) {
	client := &fakeClient{}
	resp, err := NewCVEnhancer(client, TierStandard, nil).EnhanceCV(context.Background(), &types.EnhanceRequest{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Empty(t, client.prompts)
}

func TestMissingCertifications(t *testing.T) {
	draft := []types.Certification{{ID: "a", Name: "One"}, {ID: "b", Name: "Two"}, {ID: "c", Name: "Three"}}
	got := []types.Certification{{ID: "a", Name: "Renamed"}, {Name: " two "}}

	missing := missingCertifications(draft, got)
	require.Len(t, missing, 1)
	assert.Equal(t, "c", missing[0].ID)
}
