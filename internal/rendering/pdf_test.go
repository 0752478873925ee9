package rendering

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromePath(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("no Chrome binary available")
	return ""
}

func TestPDFRenderer_RenderPDF(t *testing.T) {
	r := PDFRenderer{ChromePath: chromePath(t)}

	data, err := r.RenderPDF(context.Background(), sampleCV())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, reader.NumPage(), 1)
}

func TestPDFRenderer_CancelledContext(t *testing.T) {
	r := PDFRenderer{ChromePath: chromePath(t)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderPDF(ctx, sampleCV())
	var re *RenderError
	assert.ErrorAs(t, err, &re)
}
