// Package config loads ragbot configuration from a YAML file, a .env file
// and environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the ragbot binary.
type Config struct {
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Azure    AzureConfig    `mapstructure:"azure"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// AzureConfig holds Azure OpenAI settings. A non-empty endpoint switches
// the generation model to Azure.
type AzureConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	APIKey     string `mapstructure:"api_key"`
	Deployment string `mapstructure:"deployment"`
	APIVersion string `mapstructure:"api_version"`
}

// StoreConfig holds vector store settings.
type StoreConfig struct {
	// Path is the chromem persistence directory. Empty means in-memory.
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds the attendance database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ChatConfig holds chat turn settings.
type ChatConfig struct {
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	ResolveTimeout  time.Duration `mapstructure:"resolve_timeout"`
	ValidateTimeout time.Duration `mapstructure:"validate_timeout"`
	TopK            int           `mapstructure:"top_k"`
}

// IngestConfig holds ingestion settings.
type IngestConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

// UseAzure reports whether the Azure OpenAI endpoint is configured.
func (c *Config) UseAzure() bool {
	return c.Azure.Endpoint != ""
}

// Load loads configuration. Precedence, highest to lowest:
//  1. Environment variables (OPENAI_API_KEY, AZURE_OPENAI_*)
//  2. ragbot.yaml in the working directory
//  3. Built-in defaults
//
// A .env file in the working directory is loaded into the environment
// first, if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("ragbot")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.embedding_model", "text-embedding-3-small")
	v.SetDefault("azure.api_version", "2024-02-15-preview")
	v.SetDefault("store.path", "ragbot-store")
	v.SetDefault("database.path", "attendance.db")
	v.SetDefault("chat.max_concurrency", 8)
	v.SetDefault("chat.resolve_timeout", 30*time.Second)
	v.SetDefault("chat.validate_timeout", 60*time.Second)
	v.SetDefault("chat.top_k", 5)
	v.SetDefault("ingest.chunk_size", 500)
	v.SetDefault("ingest.chunk_overlap", 50)
}

func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("azure.endpoint", "AZURE_OPENAI_ENDPOINT")
	_ = v.BindEnv("azure.api_key", "AZURE_OPENAI_API_KEY")
	_ = v.BindEnv("azure.deployment", "AZURE_OPENAI_DEPLOYMENT")
	_ = v.BindEnv("azure.api_version", "AZURE_OPENAI_API_VERSION")
}
