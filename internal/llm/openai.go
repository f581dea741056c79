package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIModel sends prompts to the OpenAI chat completions API. The
// instruction goes into the system message and the fragments into the user
// message.
type OpenAIModel struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIModel creates a new OpenAI backed model
func NewOpenAIModel(config *Config) *OpenAIModel {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIModel{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       config.ModelName(),
		temperature: config.Temperature,
	}
}

// Prompt sends one chat completion request
func (m *OpenAIModel) Prompt(ctx context.Context, prompt string, fragments ...string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: joinFragments(fragments),
			},
		},
		Temperature: m.temperature,
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response returned by %s", m.model)
	}

	return resp.Choices[0].Message.Content, nil
}

// Name returns the model name
func (m *OpenAIModel) Name() string {
	return m.model
}
