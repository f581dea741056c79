package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Model is a plain text in, plain text out language model.
type Model interface {
	// Prompt sends the instruction prompt and the data fragments in one
	// request and returns the full reply text.
	Prompt(ctx context.Context, prompt string, fragments ...string) (string, error)

	// Name returns the model name
	Name() string
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Config holds the settings for creating a Model
type Config struct {
	Provider string // "openai" or "gemini"
	Model    string // empty selects the provider default

	OpenAIKey     string
	OpenAIBaseURL string // optional, for OpenAI compatible endpoints
	GeminiKey     string
	Temperature   float32

	MaxRetries   int           // extra attempts after a failed call
	RetryBackoff time.Duration // wait before the first retry, doubled each time
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderOpenAI,
		Temperature:  0.3,
		RetryBackoff: 2 * time.Second,
	}
}

// ModelName resolves the model to use for the configured provider.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if strings.EqualFold(c.Provider, ProviderGemini) {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

// NewModel creates the configured model, wrapped in Guarded when retries
// are enabled.
func NewModel(ctx context.Context, config *Config) (Model, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		m   Model
		err error
	)
	switch strings.ToLower(config.Provider) {
	case "", ProviderOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		m = NewOpenAIModel(config)
	case ProviderGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		m, err = NewGeminiModel(ctx, config)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.Provider)
	}

	if config.MaxRetries > 0 {
		return NewGuarded(m, config.MaxRetries, config.RetryBackoff), nil
	}
	return m, nil
}

func joinFragments(fragments []string) string {
	return strings.Join(fragments, "\n")
}
