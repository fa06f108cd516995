// Package openai converts canonical messages into OpenAI-compatible
// chat completion messages. This is the default, near-passthrough
// format for any model the detector does not recognize.
package openai

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/catalpa-labs/wirefmt"
	"github.com/catalpa-labs/wirefmt/internal/convert"
)

// Convert transforms canonical messages into OpenAI chat completion
// messages. Roles and tool fields carry over as is; example-sentinel
// names are resolved into text prefixes since the sentinels are not
// meaningful speaker labels for the API.
func Convert(messages []wirefmt.Message, opts ...Option) ([]openai.ChatCompletionMessage, error) {
	cfg := newConfig(opts)

	if err := convert.ValidateMessages(messages); err != nil {
		return nil, err
	}

	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		converted, err := convertMessage(msg, cfg)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert message to OpenAI format")
		}
		result = append(result, converted)
	}
	return result, nil
}

func convertMessage(msg wirefmt.Message, cfg *config) (openai.ChatCompletionMessage, error) {
	out := openai.ChatCompletionMessage{
		Role:       string(msg.Role),
		ToolCallID: msg.ToolCallID,
	}

	name := msg.Name
	isExample := name == wirefmt.NameExampleUser || name == wirefmt.NameExampleAssistant
	if !isExample {
		// Arbitrary speaker labels ride the native name field.
		out.Name = name
		name = ""
	}

	if msg.Content.IsString() {
		text := msg.Content.Text
		if name != "" {
			text, _ = convert.PrefixExample(text, name, cfg.names)
		}
		out.Content = text
	} else {
		parts := make([]openai.ChatMessagePart, 0, len(msg.Content.Parts))
		for _, p := range msg.Content.Parts {
			switch p.Type {
			case wirefmt.PartTypeText:
				text := p.Text
				if name != "" {
					text, _ = convert.PrefixExample(text, name, cfg.names)
				}
				parts = append(parts, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: text,
				})
			case wirefmt.PartTypeImageURL:
				if p.ImageURL == nil {
					continue
				}
				parts = append(parts, openai.ChatMessagePart{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: p.ImageURL.URL},
				})
			case wirefmt.PartTypeVideoURL:
				// Chat completions have no video part type.
				cfg.logger.Debug("skipping video part unsupported by OpenAI")
			default:
				return openai.ChatCompletionMessage{}, goerr.Wrap(convert.ErrUnsupportedContentType, "unsupported part for OpenAI", goerr.Value("type", p.Type))
			}
		}
		out.MultiContent = parts
	}

	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		})
	}

	return out, nil
}
