package rendering

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLaTeX_DefaultTemplate(t *testing.T) {
	out, err := RenderLaTeX(sampleCV(), "")
	require.NoError(t, err)

	assert.Contains(t, out, `\documentclass`)
	assert.Contains(t, out, `{\LARGE \textbf{Ada Lovelace}}`)
	assert.Contains(t, out, `Analyst \& Programmer`)
	assert.Contains(t, out, `\textit{Engineer} \hfill 1838-03 -- 1839-12, 1840-01 -- 1842-06`)
	assert.Contains(t, out, `\item First published program`)
	assert.Contains(t, out, `\section*{Certifications}`)
	assert.Contains(t, out, `French (fluent)`)
	assert.Contains(t, out, `\end{document}`)
}

func TestRenderLaTeX_CustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tex")
	require.NoError(t, os.WriteFile(path, []byte(`\name{ {{- escape .Name -}} }`), 0o600))

	cv := sampleCV()
	cv.Profile.FullName = "R&D 100%"
	out, err := RenderLaTeX(cv, path)
	require.NoError(t, err)
	assert.Equal(t, `\name{R\&D 100\%}`, out)
}

func TestRenderLaTeX_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.tex")
	require.NoError(t, os.WriteFile(bad, []byte(`{{ .Name `), 0o600))
	missingField := filepath.Join(dir, "field.tex")
	require.NoError(t, os.WriteFile(missingField, []byte(`{{ .NoSuchField }}`), 0o600))

	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"missing file", filepath.Join(dir, "missing.tex"), "template file not found"},
		{"parse error", bad, "failed to parse template"},
		{"execute error", missingField, "failed to execute template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderLaTeX(sampleCV(), tt.path)
			require.Error(t, err)
			var te *TemplateError
			require.True(t, errors.As(err, &te))
			assert.Contains(t, te.Message, tt.msg)
		})
	}
}
