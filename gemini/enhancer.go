// Package gemini provides a Google Gemini implementation of
// webvision.Enhancer.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/webvision"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// acceptMargin is how many characters longer than the raw description the
// model's output must be before it is accepted. Guards against the model
// returning a trivial paraphrase or truncated output. Tunable, not a
// load-bearing invariant.
const acceptMargin = 50

// minEnhanceLen is the minimum raw description length (in runes) worth
// sending to the model.
const minEnhanceLen = 10

const systemInstruction = "You are a marketing copywriter for websites. " +
	"Rewrite the description you are given as engaging, professional marketing copy " +
	"of 150-200 words. Stay factual to the original description and write in the " +
	"brand's voice. Return only the rewritten description, with no preamble."

// fallbackTemplates expand the brand name (%[1]s) and the lower-cased raw
// description (%[2]s). The choice between them is randomized; this is
// cosmetic copy, not data needing reproducibility.
var fallbackTemplates = []string{
	"Discover %[1]s: %[2]s A destination built for users who value quality and reliability.",
	"%[1]s brings you %[2]s Explore the site to see everything %[1]s has to offer.",
	"Welcome to %[1]s - %[2]s Trusted by visitors looking for great products and exceptional service.",
}

// Ensure Enhancer implements webvision.Enhancer at compile time.
var _ webvision.Enhancer = (*Enhancer)(nil)

// Enhancer rewrites website descriptions using Google Gemini. A nil client
// is valid and keeps the Enhancer permanently in fallback mode.
type Enhancer struct {
	client *genai.Client
	logger *slog.Logger
}

// NewEnhancer creates a new Enhancer. client may be nil when no API
// credential is configured.
func NewEnhancer(client *genai.Client, logger *slog.Logger) *Enhancer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{client: client, logger: logger}
}

// Enhance rewrites description as marketing copy for brandName. It never
// fails the caller: a missing credential, a rejected model response, and any
// API error all produce a deterministic templated fallback instead.
func (e *Enhancer) Enhance(ctx context.Context, description, brandName string) string {
	description = strings.TrimSpace(description)

	if e.client == nil ||
		description == webvision.DefaultDescription ||
		utf8.RuneCountInString(description) < minEnhanceLen {
		return Fallback(description, brandName)
	}

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(description, brandName)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		e.logger.Error("description enhancement failed", "brand", brandName, "error", err)
		return Fallback(description, brandName)
	}
	if result == nil {
		e.logger.Error("gemini returned nil result", "brand", brandName)
		return Fallback(description, brandName)
	}

	enhanced := strings.TrimSpace(result.Text())
	if !Accept(description, enhanced) {
		e.logger.Warn("rejected enhanced description",
			"brand", brandName,
			"raw_len", len(description),
			"enhanced_len", len(enhanced),
		)
		return Fallback(description, brandName)
	}

	return enhanced
}

// Accept reports whether the model output is a usable replacement for the
// raw description.
func Accept(raw, enhanced string) bool {
	return enhanced != "" && len(enhanced) > len(raw)+acceptMargin
}

// BuildConfig returns the GenerateContentConfig for enhancement calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 400,
	}
}

// BuildUserPrompt builds the user prompt carrying the brand and description.
func BuildUserPrompt(description, brandName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Brand: %s\n", brandName)
	fmt.Fprintf(&sb, "Original description: %s", description)
	return sb.String()
}

// Fallback returns a templated expansion of the brand and description used
// whenever the model cannot be called or its output is rejected.
func Fallback(description, brandName string) string {
	if description == "" || description == webvision.DefaultDescription {
		return fmt.Sprintf("Discover %s - innovative solutions and exceptional service for modern users.", brandName)
	}
	tmpl := fallbackTemplates[rand.IntN(len(fallbackTemplates))]
	return fmt.Sprintf(tmpl, brandName, strings.ToLower(description))
}
