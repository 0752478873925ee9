package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(reason genai.FinishReason, parts ...genai.Part) *genai.Candidate {
	c := &genai.Candidate{FinishReason: reason}
	if len(parts) > 0 {
		c.Content = &genai.Content{Parts: parts}
	}
	return c
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		want      string
		blocked   bool
		truncated bool
		wantErr   bool
	}{
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(genai.FinishReasonStop, genai.Text(`{"profile":`), genai.Text(`{}}`)),
			}},
			want: `{"profile":{}}`,
		},
		{
			name: "prompt blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			},
			blocked: true,
		},
		{
			name:    "safety stop",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate(genai.FinishReasonSafety)}},
			blocked: true,
		},
		{
			name: "hit token limit",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				candidate(genai.FinishReasonMaxTokens, genai.Text(`{"profile": {"full_na`)),
			}},
			truncated: true,
		},
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{
			name:    "no content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate(genai.FinishReasonStop)}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractText(tt.resp, DefaultMaxOutputTokens)
			var blocked *BlockedError
			var truncated *TruncatedError
			switch {
			case tt.blocked:
				assert.ErrorAs(t, err, &blocked)
			case tt.truncated:
				require.ErrorAs(t, err, &truncated)
				assert.Equal(t, DefaultMaxOutputTokens, truncated.MaxTokens)
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(t.Context(), nil, "")
	assert.Error(t, err)
}
