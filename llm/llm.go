// Package llm composes the format detector with the per-provider
// converters: callers hand over a model name and canonical messages and
// get back the matching provider payload.
package llm

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/catalpa-labs/wirefmt"
	"github.com/catalpa-labs/wirefmt/llm/claude"
	"github.com/catalpa-labs/wirefmt/llm/gemini"
	"github.com/catalpa-labs/wirefmt/llm/openai"
)

// Request is the converted payload for one provider. Exactly one of
// Gemini, Claude and OpenAI is set, matching Provider.
type Request struct {
	Provider wirefmt.Provider

	Gemini *gemini.Prompt
	Claude *claude.Prompt
	OpenAI []goopenai.ChatCompletionMessage
}

type config struct {
	useSystemPrompt bool
	useToolCalling  bool
	prefill         string
	names           wirefmt.Names
	logger          *slog.Logger
}

// Option configures a dispatch call. Options that a provider has no use
// for (e.g. prefill outside Claude) are silently ignored for it.
type Option func(*config)

// WithSystemPrompt enables system-prompt extraction on providers that
// separate it from the turn sequence.
func WithSystemPrompt() Option {
	return func(cfg *config) {
		cfg.useSystemPrompt = true
	}
}

// WithPrefill sets the Claude prefill text.
func WithPrefill(text string) Option {
	return func(cfg *config) {
		cfg.prefill = text
	}
}

// WithToolCalling marks the conversation as tool-calling.
func WithToolCalling() Option {
	return func(cfg *config) {
		cfg.useToolCalling = true
	}
}

// WithNames sets the speaker-name context.
func WithNames(names wirefmt.Names) Option {
	return func(cfg *config) {
		cfg.names = names
	}
}

// WithLogger sets the logger passed through to the converter.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// ForModel detects the provider format for the model name and runs the
// matching converter over the messages.
func ForModel(model string, messages []wirefmt.Message, opts ...Option) (*Request, error) {
	cfg := &config{
		names:  wirefmt.DefaultNames(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	provider := wirefmt.DetectProvider(model)
	cfg.logger.Debug("detected provider format", "model", model, "provider", provider)

	switch provider {
	case wirefmt.ProviderGemini:
		gopts := []gemini.Option{gemini.WithNames(cfg.names), gemini.WithLogger(cfg.logger)}
		if cfg.useSystemPrompt {
			gopts = append(gopts, gemini.WithSystemPrompt())
		}
		prompt, err := gemini.Convert(messages, gopts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to build Gemini request")
		}
		return &Request{Provider: provider, Gemini: prompt}, nil

	case wirefmt.ProviderClaude:
		copts := []claude.Option{claude.WithNames(cfg.names), claude.WithLogger(cfg.logger)}
		if cfg.useSystemPrompt {
			copts = append(copts, claude.WithSystemPrompt())
		}
		if cfg.useToolCalling {
			copts = append(copts, claude.WithToolCalling())
		}
		if cfg.prefill != "" {
			copts = append(copts, claude.WithPrefill(cfg.prefill))
		}
		prompt, err := claude.Convert(messages, copts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to build Claude request")
		}
		return &Request{Provider: provider, Claude: prompt}, nil

	default:
		msgs, err := openai.Convert(messages, openai.WithNames(cfg.names), openai.WithLogger(cfg.logger))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to build OpenAI request")
		}
		return &Request{Provider: provider, OpenAI: msgs}, nil
	}
}

// ForTranscript converts a stored transcript for the given model.
func ForTranscript(t *wirefmt.Transcript, model string, opts ...Option) (*Request, error) {
	if t == nil || len(t.Messages) == 0 {
		return ForModel(model, []wirefmt.Message{}, opts...)
	}
	return ForModel(model, t.Messages, opts...)
}
