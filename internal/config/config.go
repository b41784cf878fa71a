// internal/config/config.go
//
// Server configuration.
//
// Sources, lowest precedence first:
//   1. Built-in defaults.
//   2. YAML file named by CONFIG_FILE (optional).
//   3. Environment variables, after loading `.env` if present.
//
// Environment variables:
//   PORT=5175
//   LOG_LEVEL=info
//   LOG_FORMAT=json|console
//   CLIENT_ORIGIN=http://localhost:5173
//   JWT_SECRET=dev_secret_change_me
//   CONFIG_FILE=/path/to/config.yaml

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string `yaml:"port"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	ClientOrigin string `yaml:"client_origin"`
	JWTSecret    string `yaml:"jwt_secret"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:         "5175",
		LogLevel:     "info",
		LogFormat:    "json",
		ClientOrigin: "http://localhost:5173",
		JWTSecret:    "dev_secret_change_me",
	}
}

// Load resolves the configuration from defaults, CONFIG_FILE and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.mergeEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	c.overlay(file)
	return nil
}

func (c *Config) mergeEnv() {
	c.overlay(Config{
		Port:         os.Getenv("PORT"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
		ClientOrigin: os.Getenv("CLIENT_ORIGIN"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	})
}

// overlay copies the non-empty fields of o onto c.
func (c *Config) overlay(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Port, o.Port)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFormat, o.LogFormat)
	set(&c.ClientOrigin, o.ClientOrigin)
	set(&c.JWTSecret, o.JWTSecret)
}
