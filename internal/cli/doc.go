// Package cli provides command-line interface setup and configuration
// for pptrans. It handles flag parsing, command creation, and configuration
// management using cobra, viper and godotenv.
package cli
