package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Run("demo sentinel is case-insensitive and trimmed", func(t *testing.T) {
		assert.Equal(t, ModeDemo, ParseMode("demo"))
		assert.Equal(t, ModeDemo, ParseMode("DEMO"))
		assert.Equal(t, ModeDemo, ParseMode("  Demo  "))
	})

	t.Run("any other key means live", func(t *testing.T) {
		assert.Equal(t, ModeLive, ParseMode("AIzaSyReal-Key"))
		assert.Equal(t, ModeLive, ParseMode("demo-key"))
		assert.Equal(t, ModeLive, ParseMode(""))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("resolves demo mode from the gemini key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "demo")

		cfg := LoadConfig()

		assert.Equal(t, ModeDemo, cfg.Mode)
		assert.Equal(t, "demo", cfg.GeminiKey)
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing gemini key fails validation", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		cfg := LoadConfig()

		assert.Error(t, cfg.Validate())
	})

	t.Run("trims credential whitespace", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "  real-key  ")
		t.Setenv("OPENAI_API_KEY", " sk-test ")

		cfg := LoadConfig()

		assert.Equal(t, "real-key", cfg.GeminiKey)
		assert.Equal(t, "sk-test", cfg.OpenAIKey)
		assert.Equal(t, ModeLive, cfg.Mode)
		assert.Equal(t, ModeLive, cfg.ImageMode)
	})

	t.Run("demo openai key mocks only the image path", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "real-key")
		t.Setenv("OPENAI_API_KEY", "demo")

		cfg := LoadConfig()

		assert.Equal(t, ModeLive, cfg.Mode)
		assert.Equal(t, ModeDemo, cfg.ImageMode)
	})

	t.Run("demo gemini key mocks the image path too", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "demo")
		t.Setenv("OPENAI_API_KEY", "sk-real")

		cfg := LoadConfig()

		assert.Equal(t, ModeDemo, cfg.Mode)
		assert.Equal(t, ModeDemo, cfg.ImageMode)
	})
}
