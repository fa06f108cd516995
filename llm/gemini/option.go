package gemini

import (
	"log/slog"

	"github.com/catalpa-labs/wirefmt"
)

type config struct {
	useSystemPrompt bool
	names           wirefmt.Names
	logger          *slog.Logger
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

// WithSystemPrompt moves leading system messages into the system
// instruction. Without it they stay in the turn sequence as user turns.
func WithSystemPrompt() Option {
	return func(cfg *config) {
		cfg.useSystemPrompt = true
	}
}

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
