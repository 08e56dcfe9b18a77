package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Notion NotionConfig `yaml:"notion"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type NotionConfig struct {
	APIKey     string `yaml:"api_key"`
	DatabaseID string `yaml:"database_id"`
	BaseURL    string `yaml:"base_url"`
}

type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. A .env file in the working directory is loaded first when
// present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "prodboard.db",
		},
		Cache: CacheConfig{
			TTLSeconds: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("PRODBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PRODBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PRODBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PRODBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("PRODBOARD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if ttlStr := os.Getenv("PRODBOARD_CACHE_TTL"); ttlStr != "" {
		ttl, err := strconv.Atoi(ttlStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PRODBOARD_CACHE_TTL: %w", err)
		}
		cfg.Cache.TTLSeconds = ttl
	}
	if level := os.Getenv("PRODBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if key := os.Getenv("NOTION_API_KEY"); key != "" {
		cfg.Notion.APIKey = key
	}
	if id := os.Getenv("NOTION_DATABASE_ID"); id != "" {
		cfg.Notion.DatabaseID = id
	}
	if baseURL := os.Getenv("NOTION_BASE_URL"); baseURL != "" {
		cfg.Notion.BaseURL = baseURL
	}

	if cfg.Notion.APIKey == "" {
		return Config{}, fmt.Errorf("NOTION_API_KEY is required")
	}
	if cfg.Notion.DatabaseID == "" {
		return Config{}, fmt.Errorf("NOTION_DATABASE_ID is required")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
