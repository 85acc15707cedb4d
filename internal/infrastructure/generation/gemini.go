package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"slidedeck-backend/internal/config"
	"slidedeck-backend/internal/infrastructure/storage"
)

// GeminiGenerator generates slide images through the Gemini API and stores
// the returned bytes in MinIO, so callers only ever see a URL.
type GeminiGenerator struct {
	client  *genai.Client
	storage *storage.MinIOStorage
	model   string
	timeout time.Duration
}

func NewGeminiGenerator(ctx context.Context, cfg config.GenerationConfig, store *storage.MinIOStorage) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generation API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:  client,
		storage: store,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Generate renders one prompt into an image. Every call gets its own
// deadline so a stuck upstream request cannot hold a batch hostage.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	genCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(
		genCtx,
		g.model,
		genai.Text(buildPrompt(req)),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	data, mimeType, err := extractImage(resp)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("slides/%s/%s%s", req.SlideID, uuid.New().String(), extensionFor(mimeType))
	url, err := g.storage.Upload(ctx, key, data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}

	return &Result{URL: url, MimeType: mimeType}, nil
}

// buildPrompt folds aspect ratio and style parameters into the prompt text.
func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(req.Prompt)

	if req.AspectRatio != "" {
		fmt.Fprintf(&b, "\n\nAspect ratio: %s.", req.AspectRatio)
	}

	if style, ok := req.Style["style"].(string); ok && style != "" {
		fmt.Fprintf(&b, " Visual style: %s.", style)
	}

	return b.String()
}

// extractImage pulls the first inline image out of a Gemini response.
func extractImage(resp *genai.GenerateContentResponse) ([]byte, string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, "", fmt.Errorf("empty response from gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}

	// Safety filters and other abnormal terminations surface here.
	if candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
		return nil, "", fmt.Errorf("generation stopped: %s", candidate.FinishReason)
	}

	return nil, "", fmt.Errorf("no image data in gemini response")
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
