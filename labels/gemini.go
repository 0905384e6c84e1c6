// Package labels wraps the vision labeling service. It returns free-text
// garment tags for an image; turning those into categories and scores is the
// scoring package's job.
package labels

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ramonsanvesti/vesti-founder-sub001/config"
)

const labelPrompt = `You are labeling a single garment photo for a wardrobe app.
Reply with a short comma-separated list of lowercase tags describing the garment:
its type (e.g. hoodie, sneakers, blazer), material and notable attributes.
Reply with tags only, no sentences.`

// GarmentTags labels one candidate image via Gemini and returns free-text tags.
func GarmentTags(ctx context.Context, imageURL string) ([]string, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	imgData, err := fetchImage(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate image: %v", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx,
		genai.Text(labelPrompt),
		genai.ImageData("webp", imgData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate labels: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no labels generated")
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	return splitTags(raw), nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, field := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		tag := strings.TrimSpace(field)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
