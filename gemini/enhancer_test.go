package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/webvision"
	"github.com/fwojciec/webvision/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhancer_Enhance_FallbackWithoutCredential(t *testing.T) {
	t.Parallel()

	// A nil client would panic if the external service were called, so a
	// successful return proves the call was skipped.
	enhancer := gemini.NewEnhancer(nil, nil)

	got := enhancer.Enhance(context.Background(), "A long enough description of the site.", "Acme")

	require.NotEmpty(t, got)
	assert.Contains(t, got, "Acme")
	assert.Contains(t, got, strings.ToLower("A long enough description of the site."))
}

func TestEnhancer_Enhance_FallbackForShortDescription(t *testing.T) {
	t.Parallel()

	enhancer := gemini.NewEnhancer(nil, nil)

	got := enhancer.Enhance(context.Background(), "short", "Acme")

	require.NotEmpty(t, got)
	assert.Contains(t, got, "Acme")
}

func TestEnhancer_Enhance_FallbackForDefaultDescription(t *testing.T) {
	t.Parallel()

	enhancer := gemini.NewEnhancer(nil, nil)

	got := enhancer.Enhance(context.Background(), webvision.DefaultDescription, "Acme")

	assert.Equal(t, "Discover Acme - innovative solutions and exceptional service for modern users.", got)
}

func TestAccept(t *testing.T) {
	t.Parallel()

	raw := strings.Repeat("r", 20)

	t.Run("rejects empty output", func(t *testing.T) {
		t.Parallel()
		assert.False(t, gemini.Accept(raw, ""))
	})

	t.Run("rejects output not meaningfully longer than raw", func(t *testing.T) {
		t.Parallel()
		assert.False(t, gemini.Accept(raw, strings.Repeat("e", len(raw)+50)))
	})

	t.Run("accepts output longer than raw plus margin", func(t *testing.T) {
		t.Parallel()
		assert.True(t, gemini.Accept(raw, strings.Repeat("e", len(raw)+51)))
	})
}

func TestFallback_IncludesBrandAndLowercasedDescription(t *testing.T) {
	t.Parallel()

	got := gemini.Fallback("Quality Widgets For Everyone.", "Acme")

	assert.Contains(t, got, "Acme")
	assert.Contains(t, got, "quality widgets for everyone.")
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("Widgets for everyone.", "Acme")

	assert.Contains(t, prompt, "Brand: Acme")
	assert.Contains(t, prompt, "Widgets for everyone.")
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "copywriter")
	require.NotNil(t, config.Temperature)
}
