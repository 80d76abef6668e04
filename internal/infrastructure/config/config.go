package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":50051"`
	// DatabaseURL selects Postgres storage for share links. Empty keeps them
	// in memory.
	DatabaseURL   string `env:"DATABASE_URL"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"https://monkeypay.ch"`

	QRSize      int `env:"QR_SIZE" envDefault:"256"`
	QRQuietZone int `env:"QR_QUIET_ZONE" envDefault:"0"`
	QRPNGSize   int `env:"QR_PNG_SIZE" envDefault:"800"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	CoreGRPCAddr string `env:"CORE_GRPC_ADDR" envDefault:"localhost:50051"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.QRSize <= 0:
		return errors.New("QR_SIZE must be positive")
	case c.QRPNGSize <= 0:
		return errors.New("QR_PNG_SIZE must be positive")
	case c.QRQuietZone < 0:
		return errors.New("QR_QUIET_ZONE must not be negative")
	}
	return nil
}
