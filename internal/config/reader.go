package config

import (
	"errors"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrUnknownEnv = errors.New("unknown env")

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	err = validateEnv(cfg.Env)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (EnvReader) ReadEventLog() (*EventLogConfig, error) {
	cfg := new(EventLogConfig)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	err = validateEnv(cfg.Env)
	if err != nil {
		return nil, err
	}
	if !cfg.Kafka.Enabled() {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	return cfg, nil
}

func validateEnv(env string) error {
	switch env {
	case EnvDev, EnvProd, EnvLocal:
		return nil
	default:
		return ErrUnknownEnv
	}
}
