package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/go-study-planner/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Bool("redis", cfg.Redis.Enabled()).
		Bool("kafka", cfg.Kafka.Enabled()).
		Msg("read env")

	config.SetGlobal(cfg)
}
