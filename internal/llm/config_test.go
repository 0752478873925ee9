package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
}

func TestGetModel_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		models map[ModelTier]string
		tier   ModelTier
		want   string
	}{
		{"exact", map[ModelTier]string{TierAdvanced: "pro"}, TierAdvanced, "pro"},
		{"falls back to standard", map[ModelTier]string{TierStandard: "flash", TierLite: "lite"}, TierAdvanced, "flash"},
		{"falls back to lite", map[ModelTier]string{TierLite: "lite"}, "unknown", "lite"},
		{"empty", map[ModelTier]string{}, TierAdvanced, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Models: tt.models}
			assert.Equal(t, tt.want, cfg.GetModel(tt.tier))
		})
	}
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "custom-model", custom.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", base.GetModel(TierStandard))
	assert.Equal(t, base.Temperature, custom.Temperature)
}

func TestParseTier(t *testing.T) {
	got, err := ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierStandard, got)

	got, err = ParseTier("advanced")
	require.NoError(t, err)
	assert.Equal(t, TierAdvanced, got)

	_, err = ParseTier("huge")
	assert.Error(t, err)
}
