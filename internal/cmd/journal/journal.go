// Package journal parses journal service flags and launches the service.
package journal

import (
	"context"
	"flag"

	server "github.com/louisbranch/slipjar/internal/journal/app"
	entrypoint "github.com/louisbranch/slipjar/internal/platform/cmd"
)

// Config holds journal command configuration.
type Config struct {
	Port int `env:"SLIPJAR_JOURNAL_PORT" envDefault:"8090"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The journal gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the journal gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceJournal, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
