// Package config loads the optional YAML configuration file. Every field
// mirrors a CLI flag or environment variable; unset fields keep the caller's
// defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tools   ToolsConfig   `yaml:"tools"`
	Paths   PathsConfig   `yaml:"paths"`
	Whisper WhisperConfig `yaml:"whisper"`
	Watch   WatchConfig   `yaml:"watch"`
}

type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
}

type PathsConfig struct {
	Audio   string `yaml:"audio"`
	Caption string `yaml:"caption"`
	Output  string `yaml:"output"`
}

type WhisperConfig struct {
	Binary   string `yaml:"binary"`
	ModelDir string `yaml:"model_dir"`
	Model    string `yaml:"model"`
	// Translate is a pointer so "absent" and "false" stay distinguishable.
	Translate *bool `yaml:"translate"`
}

type WatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
