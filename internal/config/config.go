package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the bistro backend
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Mailgun  MailgunConfig  `yaml:"mailgun"`
	Telegram TelegramConfig `yaml:"telegram"`
	Notifier NotifierConfig `yaml:"notifier"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuthConfig holds identity token settings
type AuthConfig struct {
	TokenSecret string        `yaml:"token_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
}

// MongoConfig holds document database settings
type MongoConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Transactions   bool   `yaml:"transactions"`
	ConnectRetries int    `yaml:"connect_retries"`
}

// PostgresConfig holds the notification ledger database settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type StripeConfig struct {
	SecretKey string `yaml:"secret_key"`
	Currency  string `yaml:"currency"`
}

type MailgunConfig struct {
	Domain  string `yaml:"domain"`
	APIKey  string `yaml:"api_key"`
	From    string `yaml:"from"`
	Subject string `yaml:"subject"`
}

type TelegramConfig struct {
	Token       string `yaml:"token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

// NotifierConfig tunes the notification consumer
type NotifierConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	Prefetch    int `yaml:"prefetch"`
}

// Load reads .env (if present) into the process environment, then parses the
// YAML file with ${VAR} references expanded.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment references in data and decodes it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = time.Hour
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "bistroDB"
	}
	if c.Mongo.ConnectRetries == 0 {
		c.Mongo.ConnectRetries = 5
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.RabbitMQ.Port == 0 {
		c.RabbitMQ.Port = 5672
	}
	if c.Stripe.Currency == "" {
		c.Stripe.Currency = "usd"
	}
	if c.Mailgun.Subject == "" {
		c.Mailgun.Subject = "Bistro Boss Order Confirmation"
	}
	if c.Notifier.MaxAttempts == 0 {
		c.Notifier.MaxAttempts = 5
	}
	if c.Notifier.Prefetch == 0 {
		c.Notifier.Prefetch = 1
	}
}

// Validate checks the settings each service mode cannot start without.
func (c *Config) Validate(mode string) error {
	switch mode {
	case "api":
		if c.Auth.TokenSecret == "" {
			return fmt.Errorf("auth.token_secret is required")
		}
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required")
		}
	case "notifier":
		if !c.QueueEnabled() {
			return fmt.Errorf("rabbitmq.host is required in notifier mode")
		}
		if c.Postgres.Host == "" {
			return fmt.Errorf("postgres.host is required in notifier mode")
		}
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
	return nil
}

// QueueEnabled reports whether confirmations go through RabbitMQ.
func (c *Config) QueueEnabled() bool {
	return c.RabbitMQ.Host != ""
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
