package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/placement-insights/internal/eligibility"
)

const (
	app = "placement-insights"

	sourceKindFile   = "file"
	sourceKindPortal = "portal"
)

type Config struct {
	Source        *SourceConfig         `mapstructure:"source"`
	Concurrency   int                   `mapstructure:"concurrency"`
	Criteria      *eligibility.Criteria `mapstructure:"criteria"`
	AI            *AIConfig             `mapstructure:"ai"`
	QuestionsFile string                `mapstructure:"questions-file"`
	MetricsFile   string                `mapstructure:"metrics-file"`
}

type SourceConfig struct {
	Kind   string        `mapstructure:"kind"`
	File   string        `mapstructure:"file"`
	Portal *PortalConfig `mapstructure:"portal"`
}

type PortalConfig struct {
	URL       string `mapstructure:"url"`
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "placement-insights scores placement risk, forecasts eligibility and grades mock interviews",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if err := viper.BindEnv("source.portal.token-file", "PORTAL_TOKEN_FILE"); err != nil {
		log.Fatalf("binding PORTAL_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("source.kind", sourceKindFile)
	viper.SetDefault("source.file", "students.json")
	viper.SetDefault("questions-file", "questions.json")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is placement-insights.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// The default config file is optional; an explicit one is not.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	log.Fatal(err)
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Source == nil {
		config.Source = &SourceConfig{Kind: sourceKindFile}
	}

	return config, nil
}
