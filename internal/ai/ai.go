// Package ai defines the boundary abstraction over the external generative-AI
// provider. It exposes two capabilities: classifying an uploaded food image
// into a coarse category, and generating recipe text from a prompt (optionally
// grounded on the image).
//
// The concrete implementation talks to the Gemini API (see gemini.go). When no
// credential is configured, NewGateway returns a disabled gateway whose
// classification degrades to CategoryOther and whose text generation fails
// immediately with a configuration error; callers are expected to store that
// failure as result text rather than aborting the request.
package ai

import (
	"context"
	"strings"
)

// Category is the coarse classification of an uploaded food image.
type Category string

const (
	CategoryFruit Category = "fruit"
	CategoryMeal  Category = "meal"
	CategorySnack Category = "snack"
	CategoryJuice Category = "juice"
	CategoryOther Category = "other"
)

// classifyOrder is the fixed keyword check order. Classification is a
// substring scan over the model's free-text reply; the first keyword found
// wins. This is a documented heuristic, kept deliberately untyped — the
// provider is not asked for structured output.
var classifyOrder = []Category{CategoryFruit, CategoryMeal, CategorySnack, CategoryJuice}

// classifyInstruction is the fixed prompt sent alongside the image.
const classifyInstruction = "Classify this image as fruit, meal, snack, juice, or other."

// ParseCategory maps free-text model output to a Category. The text is
// lower-cased and scanned for the keywords fruit, meal, snack, juice in that
// order; anything else maps to CategoryOther.
func ParseCategory(text string) Category {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, c := range classifyOrder {
		if strings.Contains(lowered, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// ImagePart carries raw uploaded image bytes and their MIME type for
// provider calls.
type ImagePart struct {
	MIMEType string
	Data     []byte
}

// Gateway is the contract consumed by the submission flow.
//
// ClassifyImage never returns an error: every failure (provider outage,
// malformed response, missing credential) degrades to CategoryOther.
// GenerateText does propagate failures so the caller can encode them as
// stored result text.
type Gateway interface {
	ClassifyImage(ctx context.Context, data []byte, mimeType string) Category
	GenerateText(ctx context.Context, prompt string, image *ImagePart) (string, error)
}

// disabled is the capability-unavailable gateway used when the provider
// cannot be constructed (no API key configured).
type disabled struct {
	reason error
}

// Disabled returns a Gateway in the capability-unavailable state. Its
// ClassifyImage returns CategoryOther unconditionally and GenerateText fails
// immediately with reason.
func Disabled(reason error) Gateway {
	return disabled{reason: reason}
}

func (disabled) ClassifyImage(context.Context, []byte, string) Category { return CategoryOther }

func (d disabled) GenerateText(context.Context, string, *ImagePart) (string, error) {
	return "", d.reason
}
