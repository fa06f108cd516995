// Package claude converts canonical messages into the Anthropic Claude
// request structures (message list plus system block list).
package claude

import (
	"encoding/base64"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/catalpa-labs/wirefmt"
	"github.com/catalpa-labs/wirefmt/internal/convert"
)

const rawInputKey = "input"

// placeholderSystemText opens the conversation when the first turn is
// not user-authored; the Claude API requires a leading user message.
const placeholderSystemText = "system: System message was here"

// Prompt is the Claude-shaped request payload. Messages and System
// serialize directly into the messages-API body.
type Prompt struct {
	Messages []anthropic.MessageParam
	System   []anthropic.TextBlockParam
}

// workMessage is the canonical working form the pipeline steps operate
// on before the final SDK mapping.
type workMessage struct {
	role  wirefmt.Role
	name  string
	parts []convert.Part
	cache *wirefmt.CacheControl
}

// Convert transforms canonical messages into Claude format. The input
// slice is deep-copied first and never mutated.
//
// Leading system messages optionally move into the system block list, a
// prefill assistant turn may be appended, the first message is
// guaranteed to be user-authored, and adjacent same-role messages merge
// unless tool calling is active.
func Convert(messages []wirefmt.Message, opts ...Option) (*Prompt, error) {
	cfg := newConfig(opts)

	if err := convert.ValidateMessages(messages); err != nil {
		return nil, err
	}
	msgs := wirefmt.CloneMessages(messages)

	system := []anthropic.TextBlockParam{}
	if cfg.useSystemPrompt {
		for len(msgs) > 0 && msgs[0].Role == wirefmt.RoleSystem {
			m := msgs[0]
			msgs = msgs[1:]

			text, _ := convert.PrefixExample(m.Content.PlainText(), m.Name, cfg.names)
			block := anthropic.TextBlockParam{Text: text}
			if m.Name != "" {
				block.CacheControl = anthropic.NewCacheControlEphemeralParam()
			}
			system = append(system, block)
		}
	}

	work := make([]workMessage, 0, len(msgs)+2)
	for _, m := range msgs {
		parts, err := convert.NormalizeParts(m, false)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to normalize message content")
		}
		work = append(work, workMessage{
			role:  m.Role,
			name:  m.Name,
			parts: parts,
			cache: m.CacheControl,
		})
	}

	// Prefill is incompatible with tool calling: the API rejects a
	// prefilled assistant turn while tool use is pending.
	if cfg.prefill != "" && !cfg.useToolCalling {
		work = append(work, workMessage{
			role:  wirefmt.RoleAssistant,
			parts: []convert.Part{convert.TextPart(cfg.prefill)},
		})
	}

	if len(work) > 0 && work[0].role != wirefmt.RoleUser {
		work = append([]workMessage{{
			role:  wirefmt.RoleUser,
			parts: []convert.Part{convert.TextPart(placeholderSystemText)},
		}}, work...)
	}

	if !cfg.useToolCalling {
		work = mergeAdjacent(work)
	}

	for i := range work {
		if work[i].name == "" {
			continue
		}
		for j := range work[i].parts {
			if work[i].parts[j].Type == convert.PartText {
				work[i].parts[j].Text = convert.PrefixSpeaker(work[i].parts[j].Text, work[i].name, cfg.names)
			}
		}
		work[i].name = ""
	}

	out := make([]anthropic.MessageParam, 0, len(work))
	for _, m := range work {
		msg, err := toMessageParam(m, cfg)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert message to Claude format")
		}
		out = append(out, msg)
	}

	return &Prompt{Messages: out, System: system}, nil
}

// mergeAdjacent combines consecutive same-role messages into one whose
// content is the concatenation of their part sequences. The accumulator
// keeps the first message's name and cache annotation.
func mergeAdjacent(work []workMessage) []workMessage {
	merged := make([]workMessage, 0, len(work))
	for _, m := range work {
		if n := len(merged); n > 0 && merged[n-1].role == m.role {
			merged[n-1].parts = append(merged[n-1].parts, m.parts...)
			continue
		}
		merged = append(merged, m)
	}
	return merged
}

// toMessageParam maps a working message onto the SDK type. The Claude
// wire format has only user and assistant roles, so residual system and
// tool messages fold to user here, after ordering and merging.
func toMessageParam(m workMessage, cfg *config) (anthropic.MessageParam, error) {
	role := anthropic.MessageParamRoleUser
	if m.role == wirefmt.RoleAssistant {
		role = anthropic.MessageParamRoleAssistant
	}

	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(m.parts))
	for _, p := range m.parts {
		switch p.Type {
		case convert.PartText:
			blocks = append(blocks, anthropic.NewTextBlock(p.Text))

		case convert.PartImage:
			mime, data, ok := convert.ParseDataURI(p.URL)
			if !ok || mime == "" {
				cfg.logger.Debug("skipping image part with malformed data URI")
				continue
			}
			if _, err := base64.StdEncoding.DecodeString(data); err != nil {
				cfg.logger.Debug("skipping image part with invalid base64 payload")
				continue
			}
			blocks = append(blocks, anthropic.NewImageBlockBase64(mime, data))

		case convert.PartVideo:
			// Claude has no video block type.
			cfg.logger.Debug("skipping video part unsupported by Claude")

		case convert.PartToolCalls:
			for _, call := range p.ToolCalls {
				id := call.ID
				if id == "" {
					id = "toolu_" + uuid.NewString()
				}
				args, err := convert.ParseJSONArguments(call.Function.Arguments)
				if err != nil {
					// Use raw string if parsing fails
					args = map[string]interface{}{rawInputKey: call.Function.Arguments}
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(id, args, call.Function.Name))
			}

		case convert.PartToolResult:
			blocks = append(blocks, anthropic.ContentBlockParamUnion{
				OfToolResult: &anthropic.ToolResultBlockParam{
					ToolUseID: p.ToolCallID,
					Content: []anthropic.ToolResultBlockParamContentUnion{
						{OfText: &anthropic.TextBlockParam{Text: p.ToolContent}},
					},
				},
			})

		default:
			return anthropic.MessageParam{}, goerr.Wrap(convert.ErrUnsupportedContentType, "unsupported part for Claude", goerr.Value("type", p.Type))
		}
	}

	if m.cache != nil {
		markCacheable(blocks)
	}

	return anthropic.MessageParam{Role: role, Content: blocks}, nil
}

// markCacheable attaches the ephemeral cache annotation to the last
// text block, the only block position the wire format accepts it on.
func markCacheable(blocks []anthropic.ContentBlockParamUnion) {
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].OfText != nil {
			blocks[i].OfText.CacheControl = anthropic.NewCacheControlEphemeralParam()
			return
		}
	}
}
