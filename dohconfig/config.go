// Package dohconfig loads process-level settings for the demo CLI from
// the environment, the way appview/config.go does for the teacher's
// server.
package dohconfig

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the settings cmd/dohctl reads at startup. The core store,
// record and registry packages take no config of their own -- they are
// pure functions of their arguments.
type Config struct {
	LogLevel string `env:"DOHMANE_LOG_LEVEL, default=info"`
	StartKey int64  `env:"DOHMANE_START_KEY, default=-1"`
	SeedPath string `env:"DOHMANE_SEED_PATH"`
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
