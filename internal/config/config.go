package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

// PromptOverrides optionally replaces the built-in prompt templates. Each is
// an fmt template; leave empty to use the defaults compiled into the adapters.
type PromptOverrides struct {
	Classify       string `toml:"classify"`
	ClassifyBatch  string `toml:"classify_batch"`
	Sentiment      string `toml:"sentiment"`
	SentimentBatch string `toml:"sentiment_batch"`
	Features       string `toml:"features"`
}

type PipelineConfig struct {
	// Minimum feedback count for a theme to be eligible for feature
	// suggestions.
	FeatureThreshold int `toml:"feature_threshold"`
	// Number of top themes considered for feature suggestions.
	FeatureTopThemes int `toml:"feature_top_themes"`
}

type Config struct {
	LLM      LLMConfig       `toml:"llm"`
	Prompts  PromptOverrides `toml:"prompts"`
	Pipeline PipelineConfig  `toml:"pipeline"`
}

func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			FeatureThreshold: 2,
			FeatureTopThemes: 5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.Pipeline.FeatureThreshold <= 0 {
		cfg.Pipeline.FeatureThreshold = 2
	}
	if cfg.Pipeline.FeatureTopThemes <= 0 {
		cfg.Pipeline.FeatureTopThemes = 5
	}

	return cfg, nil
}
