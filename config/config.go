package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Admin    AdminConfig    `yaml:"admin"`
	Feed     FeedConfig     `yaml:"feed"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// KafkaConfig enables the optional outcome-event export when brokers are set.
type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	OutcomesTopic string   `yaml:"outcomes_topic"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.OutcomesTopic != ""
}

// AdminConfig seeds the default admin account when the admin table is empty.
type AdminConfig struct {
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

type FeedConfig struct {
	MaxImageBytes int64 `yaml:"max_image_bytes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = "127.0.0.1:8080"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Feed.MaxImageBytes == 0 {
		cfg.Feed.MaxImageBytes = 8 << 20
	}

	return &cfg, nil
}
