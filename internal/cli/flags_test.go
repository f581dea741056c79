package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Mode", flags.Mode, "translate"},
		{"CachePath", flags.CachePath, "translation_cache.json"},
		{"CacheBackend", flags.CacheBackend, "json"},
		{"SourceLang", flags.SourceLang, "fi"},
		{"TargetLang", flags.TargetLang, "en"},
		{"Provider", flags.Provider, "openai"},
		{"MaxRetries", flags.MaxRetries, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"ListModels", flags.ListModels},
		{"ArchiveCache", flags.ArchiveCache},
		{"QuietPrompt", flags.QuietPrompt},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	for name, value := range map[string]string{
		"CfgFile":   flags.CfgFile,
		"Pages":     flags.Pages,
		"BatchFile": flags.BatchFile,
		"Model":     flags.Model,
	} {
		if value != "" {
			t.Errorf("%s = %q, want empty", name, value)
		}
	}
}

func TestResolveConfig(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	viper.Set("llm.provider", "gemini")
	viper.Set("llm.openai_base_url", "http://localhost:8080/v1")
	viper.SetDefault("cache.backend", "sqlite")
	_ = cmd.Flags().Set("pages", "2-")

	flags.ResolveConfig()

	if flags.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini from config", flags.Provider)
	}
	if flags.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Errorf("OpenAIBaseURL = %q", flags.OpenAIBaseURL)
	}
	if flags.Pages != "2-" {
		t.Errorf("Pages = %q, want 2- from flag", flags.Pages)
	}
	if flags.Mode != "translate" {
		t.Errorf("Mode = %q, want flag default", flags.Mode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Flags)
		wantErr bool
	}{
		{"defaults", func(f *Flags) {}, false},
		{"mode case insensitive", func(f *Flags) { f.Mode = "Reverse-Words" }, false},
		{"bad mode", func(f *Flags) { f.Mode = "summarize" }, true},
		{"sqlite backend", func(f *Flags) { f.CacheBackend = "SQLite" }, false},
		{"bad backend", func(f *Flags) { f.CacheBackend = "redis" }, true},
		{"gemini", func(f *Flags) { f.Provider = "gemini" }, false},
		{"bad provider", func(f *Flags) { f.Provider = "llama" }, true},
		{"negative retries", func(f *Flags) { f.MaxRetries = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewFlags()
			tt.modify(flags)

			err := flags.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	flags := NewFlags()
	flags.Mode = " Reverse-Words "
	if err := flags.Validate(); err != nil || flags.Mode != ModeReverseWords {
		t.Errorf("Validate() did not normalize mode: %q, %v", flags.Mode, err)
	}
}
