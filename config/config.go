package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the runtime settings of the daemon and the one-shot CLI
// commands. Every field can be set in YAML and overridden through a
// LEXSYNC_-prefixed environment variable.
type Config struct {
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
	// BaseURL is the endpoint of the remote bot-modeling service.
	BaseURL             string        `yaml:"base_url"`
	PollInterval        time.Duration `yaml:"poll_interval"`
	MaxWaitAttempts     int           `yaml:"max_wait_attempts"`
	MaxConcurrentBuilds int           `yaml:"max_concurrent_builds"`
	BuildRetryLimit     int           `yaml:"build_retry_limit"`
	// RateLimit paces outbound requests per second. Zero means unlimited.
	RateLimit float64 `yaml:"rate_limit"`
}

const envPrefix = "LEXSYNC_"

var envSetters = map[string]func(*Config, string) error{
	"listen":                setListen,
	"log_level":             setLogLevel,
	"base_url":              setBaseURL,
	"poll_interval":         setPollInterval,
	"max_wait_attempts":     setMaxWaitAttempts,
	"max_concurrent_builds": setMaxConcurrentBuilds,
	"build_retry_limit":     setBuildRetryLimit,
	"rate_limit":            setRateLimit,
}

var envSuffixToPath = func() map[string]string {
	paths := make(map[string]string, len(envSetters))
	for path := range envSetters {
		paths[strings.ToUpper(path)] = path
	}
	return paths
}()

func Default() Config {
	return Config{
		Listen:              ":8080",
		LogLevel:            "info",
		PollInterval:        5 * time.Second,
		MaxWaitAttempts:     60,
		MaxConcurrentBuilds: 5,
		BuildRetryLimit:     5,
	}
}

// Load reads the configuration file (optional, defaults apply when path is
// empty) and applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		pair := strings.SplitN(env, "=", 2)
		suffix := strings.TrimPrefix(pair[0], envPrefix)
		path, known := envSuffixToPath[suffix]
		if !known {
			return fmt.Errorf("unsupported override %q", pair[0])
		}
		value := ""
		if len(pair) == 2 {
			value = pair[1]
		}
		if err := envSetters[path](cfg, value); err != nil {
			return fmt.Errorf("apply override %q: %w", pair[0], err)
		}
	}
	return nil
}

func setListen(cfg *Config, value string) error {
	cfg.Listen = value
	return nil
}

func setLogLevel(cfg *Config, value string) error {
	cfg.LogLevel = value
	return nil
}

func setBaseURL(cfg *Config, value string) error {
	cfg.BaseURL = value
	return nil
}

func setPollInterval(cfg *Config, value string) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	cfg.PollInterval = parsed
	return nil
}

func setMaxWaitAttempts(cfg *Config, value string) error {
	return setInt(&cfg.MaxWaitAttempts, value)
}

func setMaxConcurrentBuilds(cfg *Config, value string) error {
	return setInt(&cfg.MaxConcurrentBuilds, value)
}

func setBuildRetryLimit(cfg *Config, value string) error {
	return setInt(&cfg.BuildRetryLimit, value)
}

func setRateLimit(cfg *Config, value string) error {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return err
	}
	cfg.RateLimit = parsed
	return nil
}

func setInt(target *int, value string) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}
