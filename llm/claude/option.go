package claude

import (
	"log/slog"

	"github.com/catalpa-labs/wirefmt"
)

type config struct {
	useSystemPrompt bool
	useToolCalling  bool
	prefill         string
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

// WithSystemPrompt extracts leading system messages into the system
// block list. Without it they stay in the message sequence.
func WithSystemPrompt() Option {
	return func(cfg *config) {
		cfg.useSystemPrompt = true
	}
}

// WithPrefill appends an assistant turn with the given text so the
// model continues from it. Ignored while tool calling is active.
func WithPrefill(text string) Option {
	return func(cfg *config) {
		cfg.prefill = text
	}
}

// WithToolCalling marks the conversation as tool-calling: same-role
// merging and prefill are both disabled, since the Claude tool protocol
// relies on the turn boundaries staying intact.
func WithToolCalling() Option {
	return func(cfg *config) {
		cfg.useToolCalling = true
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
