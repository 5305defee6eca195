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

type GraphConfig struct {
	// Source selects where the triple set comes from: "file" (JSON snapshot,
	// seed-rebuilt when missing) or "memgraph".
	Source       string `toml:"source"`
	SnapshotPath string `toml:"snapshot_path"`
	URI          string `toml:"uri"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
}

type CacheConfig struct {
	Dir        string `toml:"dir"`
	InMemory   bool   `toml:"in_memory"`
	Capacity   int    `toml:"capacity"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type AgentConfig struct {
	MaxIterations       int `toml:"max_iterations"`
	MaxContextChars     int `toml:"max_context_chars"`
	MaxObservationChars int `toml:"max_observation_chars"`
}

type Config struct {
	LLM   LLMConfig   `toml:"llm"`
	Graph GraphConfig `toml:"graph"`
	Cache CacheConfig `toml:"cache"`
	Agent AgentConfig `toml:"agent"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "groq",
			Model:    "llama-3.1-8b-instant",
		},
		Graph: GraphConfig{
			Source:       "file",
			SnapshotPath: "data/graph.json",
		},
		Cache: CacheConfig{
			Dir:        "data/cache",
			Capacity:   256,
			TTLSeconds: 86400,
		},
		Agent: AgentConfig{
			MaxIterations:       6,
			MaxContextChars:     6000,
			MaxObservationChars: 2000,
		},
	}
}
