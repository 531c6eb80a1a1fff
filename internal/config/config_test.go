package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "bistroDB", cfg.Mongo.Database)
	assert.NotZero(t, cfg.RabbitMQ.Port)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_TOKEN_SECRET", "s3cret")

	cfg, err := Parse([]byte("auth:\n  token_secret: ${TEST_TOKEN_SECRET}\n"))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, 5, cfg.Notifier.MaxAttempts)
	assert.False(t, cfg.QueueEnabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "api ok",
			mode: "api",
			cfg:  Config{Auth: AuthConfig{TokenSecret: "x"}, Mongo: MongoConfig{URI: "mongodb://localhost"}},
		},
		{
			name:    "api without secret",
			mode:    "api",
			cfg:     Config{Mongo: MongoConfig{URI: "mongodb://localhost"}},
			wantErr: true,
		},
		{
			name:    "notifier without queue",
			mode:    "notifier",
			cfg:     Config{Postgres: PostgresConfig{Host: "db"}},
			wantErr: true,
		},
		{
			name: "notifier ok",
			mode: "notifier",
			cfg:  Config{Postgres: PostgresConfig{Host: "db"}, RabbitMQ: RabbitMQConfig{Host: "mq"}},
		},
		{
			name:    "unknown mode",
			mode:    "kitchen",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestURLs(t *testing.T) {
	cfg := Config{
		Postgres: PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "n"},
		RabbitMQ: RabbitMQConfig{Host: "mq", Port: 5672, User: "guest", Password: "guest"},
	}

	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", cfg.DatabaseURL())
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQURL())
}
