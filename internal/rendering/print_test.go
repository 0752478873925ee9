package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTerminal_NoTTY(t *testing.T) {
	out, err := RenderTerminal(sampleCV(), TerminalOptions{Width: 100, Style: "notty"})
	require.NoError(t, err)

	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Royal Society")
	assert.Contains(t, out, "First published program")
}

func TestRenderTerminal_UnknownStyle(t *testing.T) {
	_, err := RenderTerminal(sampleCV(), TerminalOptions{Style: "no-such-style"})
	var re *RenderError
	assert.ErrorAs(t, err, &re)
}
