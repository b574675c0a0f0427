package app

import (
	"fmt"

	_ "github.com/joho/godotenv/autoload"

	"github.com/nlitvinov/go-task-api/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}

	if cfg.Auth.TokenScheme != config.TokenSchemeHMAC &&
		cfg.Auth.TokenScheme != config.TokenSchemeLegacy {
		err = fmt.Errorf("unknown token scheme: %s", cfg.Auth.TokenScheme)
		globalLogger.Error().
			Err(err).
			Msg("invalid auth config")
		panic(err)
	}
	if cfg.Auth.TokenScheme == config.TokenSchemeHMAC && cfg.Auth.SigningKey == "" {
		err = fmt.Errorf("AUTH_SIGNING_KEY is required for the hmac token scheme")
		globalLogger.Error().
			Err(err).
			Msg("invalid auth config")
		panic(err)
	}

	globalLogger.Info().
		Str("env", cfg.Env).
		Msg("read env")

	config.SetGlobal(cfg)
}
