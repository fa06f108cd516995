package openai

import (
	"log/slog"

	"github.com/catalpa-labs/wirefmt"
)

type config struct {
	names  wirefmt.Names
	logger *slog.Logger
}

func newConfig(opts []Option) *config {
	cfg := &config{
		names:  wirefmt.DefaultNames(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a conversion call.
type Option func(*config)

// WithNames sets the speaker-name context for example-turn prefixing.
func WithNames(names wirefmt.Names) Option {
	return func(cfg *config) {
		cfg.names = names
	}
}

// WithLogger sets the logger for the conversion. Default is a discard
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
