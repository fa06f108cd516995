// Package gemini converts canonical messages into the Google Gemini
// request structures (contents plus system instruction).
package gemini

import (
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/catalpa-labs/wirefmt"
	"github.com/catalpa-labs/wirefmt/internal/convert"
)

const (
	rawArgumentsKey = "arguments"
	unknownToolName = "unknown"
)

// Prompt is the Gemini-shaped request payload. Contents and
// SystemInstruction serialize directly into the generateContent body.
type Prompt struct {
	Contents          []*genai.Content
	SystemInstruction *genai.Content
}

// Convert transforms canonical messages into Gemini format. The input
// slice is deep-copied first and never mutated.
//
// Roles are remapped (system and tool fold into user, assistant becomes
// model), leading system messages optionally move into the system
// instruction, and adjacent same-role messages merge with their text
// joined by a blank line.
func Convert(messages []wirefmt.Message, opts ...Option) (*Prompt, error) {
	cfg := newConfig(opts)

	if err := convert.ValidateMessages(messages); err != nil {
		return nil, err
	}
	msgs := wirefmt.CloneMessages(messages)

	sysParts := []*genai.Part{}
	if cfg.useSystemPrompt {
		// The final message stays in place even when it is a system
		// message, so a system-only prompt still has a turn to send.
		for len(msgs) > 1 && msgs[0].Role == wirefmt.RoleSystem {
			m := msgs[0]
			msgs = msgs[1:]

			text, _ := convert.PrefixExample(m.Content.PlainText(), m.Name, cfg.names)
			sysParts = append(sysParts, &genai.Part{Text: text})
		}
	}

	// Tool call id to function name, scoped to this conversion only.
	toolNames := map[string]string{}

	contents := make([]*genai.Content, 0, len(msgs))
	for _, msg := range msgs {
		role := "user"
		if msg.Role == wirefmt.RoleAssistant {
			role = "model"
		}

		parts, err := convert.NormalizeParts(msg, true)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to normalize message content")
		}

		mapped, err := mapParts(parts, msg.Name, toolNames, cfg)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert message to Gemini format")
		}

		if n := len(contents); n > 0 && contents[n-1].Role == role {
			mergeContent(contents[n-1], mapped)
			continue
		}
		contents = append(contents, &genai.Content{Role: role, Parts: mapped})
	}

	return &Prompt{
		Contents:          contents,
		SystemInstruction: &genai.Content{Parts: sysParts},
	}, nil
}

// mapParts converts normalized parts into Gemini parts, applying
// speaker prefixing to text and recording tool-call names for later
// functionResponse lookups.
func mapParts(parts []convert.Part, name string, toolNames map[string]string, cfg *config) ([]*genai.Part, error) {
	mapped := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		switch p.Type {
		case convert.PartText:
			text := p.Text
			if name != "" {
				text = convert.PrefixSpeaker(text, name, cfg.names)
			}
			mapped = append(mapped, &genai.Part{Text: text})

		case convert.PartToolCalls:
			for _, call := range p.ToolCalls {
				id := call.ID
				if id == "" {
					id = "call_" + uuid.NewString()
				}
				toolNames[id] = call.Function.Name

				args, err := convert.ParseJSONArguments(call.Function.Arguments)
				if err != nil {
					// Use raw string if parsing fails
					args = map[string]interface{}{rawArgumentsKey: call.Function.Arguments}
				}
				mapped = append(mapped, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						Name: call.Function.Name,
						Args: args,
					},
				})
			}

		case convert.PartToolResult:
			fnName := toolNames[p.ToolCallID]
			if fnName == "" {
				fnName = unknownToolName
			}
			mapped = append(mapped, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name: fnName,
					Response: map[string]interface{}{
						"name":    fnName,
						"content": p.ToolContent,
					},
				},
			})

		case convert.PartImage, convert.PartVideo:
			blob, ok := inlineBlob(p, cfg)
			if !ok {
				continue
			}
			mapped = append(mapped, &genai.Part{InlineData: blob})

		default:
			return nil, goerr.Wrap(convert.ErrUnsupportedContentType, "unsupported part for Gemini", goerr.Value("type", p.Type))
		}
	}
	return mapped, nil
}

// inlineBlob decodes an image or video data URI into a Gemini blob.
// Malformed URIs and undecodable payloads are skipped, not fatal.
func inlineBlob(p convert.Part, cfg *config) (*genai.Blob, bool) {
	mime, data, ok := convert.ParseDataURI(p.URL)
	if !ok {
		cfg.logger.Debug("skipping part with malformed data URI", "type", p.Type)
		return nil, false
	}
	if p.Type == convert.PartVideo {
		mime = convert.VideoMIMEFromDataURI(p.URL)
	} else if mime == "" {
		cfg.logger.Debug("skipping image part without a MIME type")
		return nil, false
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		cfg.logger.Debug("skipping part with invalid base64 payload", "type", p.Type)
		return nil, false
	}
	return &genai.Blob{MIMEType: mime, Data: raw}, true
}

// mergeContent folds parts into an existing same-role content entry.
// Text concatenates onto the first existing text part with a blank line
// between; every other part kind is appended as is.
func mergeContent(dst *genai.Content, parts []*genai.Part) {
	for _, p := range parts {
		if isTextPart(p) {
			if t := firstTextPart(dst.Parts); t != nil {
				t.Text += "\n\n" + p.Text
				continue
			}
		}
		dst.Parts = append(dst.Parts, p)
	}
}

func isTextPart(p *genai.Part) bool {
	return p.InlineData == nil && p.FunctionCall == nil && p.FunctionResponse == nil
}

func firstTextPart(parts []*genai.Part) *genai.Part {
	for _, p := range parts {
		if isTextPart(p) {
			return p
		}
	}
	return nil
}
