package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func docxParagraphs(t *testing.T, data []byte) []string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var out []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					buf.WriteString(txt.Text)
				}
			}
		}
		if s := strings.TrimSpace(buf.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func TestRenderDOCX_Content(t *testing.T) {
	data, err := RenderDOCX(sampleCV())
	require.NoError(t, err)

	paras := docxParagraphs(t, data)
	require.NotEmpty(t, paras)
	assert.Equal(t, "Ada Lovelace", paras[0])
	assert.Contains(t, paras, "EXPERIENCE")
	assert.Contains(t, paras, "Royal Society")
	assert.Contains(t, paras, "• First published program")
	assert.Contains(t, paras, "Technical: Algorithms (expert), Notation")
	assert.Contains(t, paras, "Difference Engine Operator, Babbage Ltd, 1841-02")
}

func TestRenderDOCX_EmptyCV(t *testing.T) {
	data, err := RenderDOCX(types.NewCVData())
	require.NoError(t, err)

	assert.Equal(t, []string{"Curriculum Vitae"}, docxParagraphs(t, data))
}
