package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/pptrans/internal/cache"
)

const (
	ModeTranslate    = "translate"
	ModeReverseWords = "reverse-words"

	// AutoLanguage asks for source language detection.
	AutoLanguage = "auto"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	Mode         string
	Pages        string
	BatchFile    string
	ListModels   bool
	ArchiveCache bool
	QuietPrompt  bool

	// Cache flags
	CachePath    string
	CacheBackend string

	// Language flags
	SourceLang string
	TargetLang string

	// LLM flags
	Provider      string
	Model         string
	MaxRetries    int
	OpenAIBaseURL string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Mode:         ModeTranslate,
		CachePath:    cache.DefaultPath,
		CacheBackend: "json",
		SourceLang:   "fi",
		TargetLang:   "en",
		Provider:     "openai",
	}
}

// viperKeys maps flag names to their configuration file keys
var viperKeys = map[string]string{
	"mode":          "translate.mode",
	"pages":         "translate.pages",
	"quiet-prompt":  "translate.quiet_prompt",
	"cache":         "cache.path",
	"cache-backend": "cache.backend",
	"source-lang":   "language.source",
	"target-lang":   "language.target",
	"provider":      "llm.provider",
	"model":         "llm.model",
	"max-retries":   "llm.max_retries",
}

// ResolveConfig fills the flags from viper, which returns the explicitly
// set flag, then the PPTRANS_ environment, then the config file, then the
// flag default.
func (f *Flags) ResolveConfig() {
	f.Mode = viper.GetString("translate.mode")
	f.Pages = viper.GetString("translate.pages")
	f.QuietPrompt = viper.GetBool("translate.quiet_prompt")
	f.CachePath = viper.GetString("cache.path")
	f.CacheBackend = viper.GetString("cache.backend")
	f.SourceLang = viper.GetString("language.source")
	f.TargetLang = viper.GetString("language.target")
	f.Provider = viper.GetString("llm.provider")
	f.Model = viper.GetString("llm.model")
	f.MaxRetries = viper.GetInt("llm.max_retries")
	f.OpenAIBaseURL = viper.GetString("llm.openai_base_url")
}

// Validate normalizes and checks the flag values
func (f *Flags) Validate() error {
	f.Mode = strings.ToLower(strings.TrimSpace(f.Mode))
	switch f.Mode {
	case ModeTranslate, ModeReverseWords:
	default:
		return fmt.Errorf("invalid mode %q: must be %s or %s", f.Mode, ModeTranslate, ModeReverseWords)
	}

	f.CacheBackend = strings.ToLower(strings.TrimSpace(f.CacheBackend))
	switch f.CacheBackend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid cache backend %q: must be json or sqlite", f.CacheBackend)
	}

	f.Provider = strings.ToLower(strings.TrimSpace(f.Provider))
	switch f.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("invalid provider %q: must be openai or gemini", f.Provider)
	}

	if f.MaxRetries < 0 {
		return fmt.Errorf("max-retries must not be negative, got %d", f.MaxRetries)
	}
	return nil
}
