package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrNoAPIKey is the configuration error surfaced by the disabled gateway
// when no Gemini credential was provided.
var ErrNoAPIKey = errors.New("GEMINI_API_KEY not loaded")

// Gemini implements Gateway against the Gemini API using the official
// google.golang.org/genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGateway constructs the Gemini-backed gateway. When apiKey is empty it
// returns the disabled gateway instead of an error: the application still
// serves requests, storing the configuration failure as result text. When
// model is empty, DefaultModel is used.
func NewGateway(ctx context.Context, apiKey, model string) (Gateway, error) {
	if apiKey == "" {
		return Disabled(ErrNoAPIKey), nil
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// ClassifyImage sends the image plus the fixed classification instruction to
// the model and maps the free-text reply onto a Category. All failures are
// swallowed (logged at warn level) and degrade to CategoryOther.
func (g *Gemini) ClassifyImage(ctx context.Context, data []byte, mimeType string) Category {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(classifyInstruction),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		log.Warn().Err(err).Msg("image classification failed; falling back to 'other'")
		return CategoryOther
	}
	return ParseCategory(extractText(resp))
}

// GenerateText sends prompt (and image, when present) to the content
// generation endpoint with default generation configuration and returns the
// extracted text. Unlike ClassifyImage, failures propagate to the caller.
func (g *Gemini) GenerateText(ctx context.Context, prompt string, image *ImagePart) (string, error) {
	var contents []*genai.Content
	if image != nil {
		contents = []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromBytes(image.Data, image.MIMEType),
				genai.NewPartFromText(prompt),
			}, genai.RoleUser),
		}
	} else {
		contents = []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", err
	}
	return extractText(resp), nil
}

// extractText pulls plain text from a generation response. It prefers the
// SDK's aggregated text accessor, falls back to the first candidate's first
// content part, and finally to a string rendering of the raw response.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if text := resp.Text(); text != "" {
		return text
	}
	if len(resp.Candidates) > 0 {
		if c := resp.Candidates[0].Content; c != nil && len(c.Parts) > 0 && c.Parts[0].Text != "" {
			return c.Parts[0].Text
		}
	}
	return fmt.Sprintf("%v", resp)
}
