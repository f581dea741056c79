package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/pptrans/internal"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pptrans <input> <output>",
		Short: "Slide deck translator",
		Long: `pptrans copies a PowerPoint presentation and translates the text of the
copy with a language model, keeping every run's formatting and the layout.

Translations are cached per page, so unchanged slides never reach the
model twice.

Examples:
  pptrans talk.pptx talk_en.pptx                      # Translate Finnish to English
  pptrans --pages 1,3-5,8- talk.pptx talk_en.pptx     # Only some pages
  pptrans --mode reverse-words talk.pptx test.pptx    # Offline dry run
  pptrans --batch decks.txt                           # Many decks, one per line`,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.BatchFile != "" || flags.ListModels || flags.ArchiveCache {
				return cobra.MaximumNArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.pptrans.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.Mode, "mode", flags.Mode, "Operation mode: translate or reverse-words")
	cmd.Flags().StringVar(&flags.Pages, "pages", "", "Page range to process (e.g., '1,3-5,8-'), 1-indexed; all pages if not set")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process decks from file (one 'input = output' per line)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().BoolVar(&flags.ArchiveCache, "archive-cache", false, "Move the translation cache into an archive directory before running")
	cmd.Flags().BoolVar(&flags.QuietPrompt, "quiet-prompt", false, "Do not echo the prompt and the model response")

	// Cache flags
	cmd.Flags().StringVar(&flags.CachePath, "cache", flags.CachePath, "Translation cache file")
	cmd.Flags().StringVar(&flags.CacheBackend, "cache-backend", flags.CacheBackend, "Cache backend: json or sqlite")

	// Language flags
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "Source language (BCP 47 tag, or 'auto' to detect)")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "Target language (BCP 47 tag)")

	// LLM flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "LLM provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (default: gpt-4o-mini for openai, gemini-2.0-flash for gemini)")
	cmd.Flags().IntVar(&flags.MaxRetries, "max-retries", 0, "Retries for a failed model call")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	for flag, key := range viperKeys {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// InitConfig loads .env files and initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".pptrans" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pptrans")
	}

	// Environment variables, e.g. PPTRANS_LLM_PROVIDER
	viper.SetEnvPrefix("PPTRANS")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("llm.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("llm.gemini_key")
}
