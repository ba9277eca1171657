package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the runtime tuning for Catalyst matches. Values come from
// the Nakama runtime environment (RUNTIME_CTX_ENV), with defaults matching
// the published game rules.
type Config struct {
	MaxTurns          int    `env:"CATALYST_MAX_TURNS" envDefault:"20"`
	SituationHandSize int    `env:"CATALYST_SITUATION_HAND_SIZE" envDefault:"3"`
	TurnDurationSec   int    `env:"CATALYST_TURN_DURATION_SEC" envDefault:"45"`
	CatalogPath       string `env:"CATALYST_CATALOG_PATH" envDefault:"data/catalog.json"`

	BotsEnabled     bool `env:"CATALYST_BOTS_ENABLED" envDefault:"true"`
	BotMinDelaySec  int  `env:"CATALYST_BOT_MIN_DELAY_SEC" envDefault:"1"`
	BotMaxDelaySec  int  `env:"CATALYST_BOT_MAX_DELAY_SEC" envDefault:"3"`
	BotFillDelaySec int  `env:"CATALYST_BOT_FILL_DELAY_SEC" envDefault:"10"`
}

// FromEnv parses a Config out of the given environment map.
func FromEnv(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("failed to parse catalyst config: %w", err)
	}
	if cfg.BotMaxDelaySec < cfg.BotMinDelaySec {
		cfg.BotMaxDelaySec = cfg.BotMinDelaySec
	}
	return cfg, nil
}
