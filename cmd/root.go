// Package cmd wires the jobscout CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "jobscout"

var cfgFile string

// Config is the root configuration shared by all commands.
type Config struct {
	Server *ServerConfig `mapstructure:"server"`
	Auth   *AuthConfig   `mapstructure:"auth"`
	AI     *AIConfig     `mapstructure:"ai"`
	Seed   *SeedConfig   `mapstructure:"seed"`
}

// ServerConfig configures the HTTP listener and storage.
type ServerConfig struct {
	// ListenAddress is the address the API server binds to.
	ListenAddress string `mapstructure:"listen-address"`
	// Database is the path to the sqlite database file.
	Database string `mapstructure:"database"`
}

// AuthConfig configures session token signing.
type AuthConfig struct {
	// JWTSecret is the inline HMAC signing secret. Prefer JWTSecretFile or
	// the JOBSCOUT_JWT_SECRET environment variable.
	JWTSecret string `mapstructure:"jwt-secret"`
	// JWTSecretFile points to a file holding the signing secret.
	JWTSecretFile string `mapstructure:"jwt-secret-file"`
	// TokenTTLHours is the session token lifetime.
	TokenTTLHours int `mapstructure:"token-ttl-hours"`
}

// AIConfig configures the completion backend for the assistant and the
// match scorer. When disabled both fall back to deterministic behavior.
type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig configures the Gemini completion backend.
type GeminiConfig struct {
	// APIKey is the inline API key. Prefer APIKeyFile or the GEMINI_API_KEY
	// environment variable.
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
	// MaxLogLength truncates prompts and completions in debug logs.
	MaxLogLength int `mapstructure:"max-log-length"`
}

// SeedConfig configures the demo posting board.
type SeedConfig struct {
	// Jobs is how many postings to generate when the board is empty.
	Jobs int `mapstructure:"jobs"`
	// RefreshCron regenerates the board on a schedule when set.
	RefreshCron string `mapstructure:"refresh-cron"`
}

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "An AI assisted job search backend",
	Long: `Jobscout serves a demo job board with an AI assistant that turns chat
messages into job searches and filter updates, and scores uploaded
resumes against every posting.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is ./%s.yaml)", app))
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "write logs as json")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.BindEnv("auth.jwt-secret", "JOBSCOUT_JWT_SECRET")
	viper.BindEnv("auth.jwt-secret-file", "JOBSCOUT_JWT_SECRET_FILE")
	viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY")
	viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE")

	viper.SetDefault("server.listen-address", ":8080")
	viper.SetDefault("server.database", "jobscout.db")
	viper.SetDefault("auth.token-ttl-hours", 168)
	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("seed.jobs", 50)
	viper.SetDefault("seed.refresh-cron", "")
}

func initConfig() {
	// Local .env files are a convenience for development setups.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config is fine, an unreadable explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "unable to read config file: %v\n", err)
			os.Exit(1)
		}
	}
}

func getConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return cfg, nil
}
