package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(CVSchema()), &v))
	assert.Equal(t, "CVData", v["title"])
}

func TestValidateCV(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantField string
	}{
		{
			name:      "minimal",
			doc:       `{"profile": {"full_name": "Ada", "email": "ada@example.com"}}`,
			wantValid: true,
		},
		{
			name: "full document with nulls",
			doc: `{
				"profile": {"full_name": "Ada"},
				"experience": [{"id": "x", "company": "Acme", "current": true, "achievements": ["a"]}],
				"certifications": null,
				"ai_insights": {"ats_score": 82, "keywords": ["go"]},
				"cv_assets": null
			}`,
			wantValid: true,
		},
		{
			name:      "missing profile",
			doc:       `{"education": []}`,
			wantField: "(root)",
		},
		{
			name:      "section is not an array",
			doc:       `{"profile": {}, "skills": {"name": "Go"}}`,
			wantField: "skills",
		},
		{
			name:      "ats score out of range",
			doc:       `{"profile": {}, "ai_insights": {"ats_score": 140}}`,
			wantField: "ai_insights.ats_score",
		},
		{
			name:      "achievements wrong type",
			doc:       `{"profile": {}, "experience": [{"achievements": "led team"}]}`,
			wantField: "experience.0.achievements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCV([]byte(tt.doc))
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			fields := make([]string, 0, len(ve.Errors))
			for _, fe := range ve.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateCV_Malformed(t *testing.T) {
	err := ValidateCV([]byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CV JSON")
}

func TestValidateCVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profile": {"full_name": "Ada"}}`), 0644))
	assert.NoError(t, ValidateCVFile(path))

	err := ValidateCVFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read JSON file")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{"name": 1}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)
	assert.Contains(t, ve.Error(), "validation failed")

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}
