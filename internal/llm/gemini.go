package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiModel sends prompts to the Gemini API. The instruction becomes the
// system instruction and the fragments the user content.
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiModel creates a new Gemini backed model
func NewGeminiModel(ctx context.Context, config *Config) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{
		client:      client,
		model:       config.ModelName(),
		temperature: config.Temperature,
	}, nil
}

// Prompt sends one GenerateContent request
func (m *GeminiModel) Prompt(ctx context.Context, prompt string, fragments ...string) (string, error) {
	temperature := m.temperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt, genai.RoleUser),
		Temperature:       &temperature,
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(joinFragments(fragments)), cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no response returned by %s", m.model)
	}
	return text, nil
}

// Name returns the model name
func (m *GeminiModel) Name() string {
	return m.model
}
