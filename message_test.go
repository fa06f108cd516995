package wirefmt_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/catalpa-labs/wirefmt"
)

func TestContentUnmarshal(t *testing.T) {
	t.Run("plain string", func(t *testing.T) {
		var msg wirefmt.Message
		gt.NoError(t, json.Unmarshal([]byte(`{"role":"user","content":"hello"}`), &msg))
		gt.True(t, msg.Content.IsString())
		gt.Equal(t, msg.Content.Text, "hello")
	})

	t.Run("part array", func(t *testing.T) {
		raw := `{"role":"user","content":[
			{"type":"text","text":"look"},
			{"type":"image_url","image_url":{"url":"data:image/png;base64,AAAA"}}
		]}`
		var msg wirefmt.Message
		gt.NoError(t, json.Unmarshal([]byte(raw), &msg))
		gt.True(t, !msg.Content.IsString())
		gt.Equal(t, len(msg.Content.Parts), 2)
		gt.Equal(t, msg.Content.Parts[0].Type, wirefmt.PartTypeText)
		gt.Equal(t, msg.Content.Parts[1].Type, wirefmt.PartTypeImageURL)
		gt.Equal(t, msg.Content.Parts[1].ImageURL.URL, "data:image/png;base64,AAAA")
	})

	t.Run("missing part type defaults to text", func(t *testing.T) {
		var msg wirefmt.Message
		gt.NoError(t, json.Unmarshal([]byte(`{"role":"user","content":[{"text":"untyped"}]}`), &msg))
		gt.Equal(t, msg.Content.Parts[0].Type, wirefmt.PartTypeText)
		gt.Equal(t, msg.Content.Parts[0].Text, "untyped")
	})

	t.Run("null content", func(t *testing.T) {
		var msg wirefmt.Message
		gt.NoError(t, json.Unmarshal([]byte(`{"role":"assistant","content":null}`), &msg))
		gt.True(t, msg.Content.IsString())
		gt.Equal(t, msg.Content.Text, "")
	})

	t.Run("invalid content shape", func(t *testing.T) {
		var msg wirefmt.Message
		err := json.Unmarshal([]byte(`{"role":"user","content":42}`), &msg)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, wirefmt.ErrInvalidContent))
	})
}

func TestContentMarshalRoundTrip(t *testing.T) {
	t.Run("string form stays a string", func(t *testing.T) {
		data, err := json.Marshal(wirefmt.TextContent("hi"))
		gt.NoError(t, err)
		gt.Equal(t, string(data), `"hi"`)
	})

	t.Run("parts form stays an array", func(t *testing.T) {
		data, err := json.Marshal(wirefmt.PartsContent(wirefmt.NewTextPart("hi")))
		gt.NoError(t, err)
		gt.Equal(t, string(data), `[{"type":"text","text":"hi"}]`)
	})
}

func TestContentPlainText(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		gt.Equal(t, wirefmt.TextContent("abc").PlainText(), "abc")
	})

	t.Run("parts form joins text and skips media", func(t *testing.T) {
		c := wirefmt.PartsContent(
			wirefmt.NewTextPart("one"),
			wirefmt.NewImagePart("data:image/png;base64,AAAA"),
			wirefmt.NewTextPart("two"),
		)
		gt.Equal(t, c.PlainText(), "one\ntwo")
	})
}

func TestMessageClone(t *testing.T) {
	orig := wirefmt.Message{
		Role:    wirefmt.RoleUser,
		Content: wirefmt.PartsContent(wirefmt.NewImagePart("data:image/png;base64,AAAA")),
		ToolCalls: []wirefmt.ToolCall{
			{ID: "call_1", Function: wirefmt.FunctionCall{Name: "f", Arguments: "{}"}},
		},
		CacheControl: &wirefmt.CacheControl{Type: "ephemeral"},
	}

	clone := orig.Clone()
	clone.Content.Parts[0].ImageURL.URL = "changed"
	clone.ToolCalls[0].ID = "changed"
	clone.CacheControl.Type = "changed"

	gt.Equal(t, orig.Content.Parts[0].ImageURL.URL, "data:image/png;base64,AAAA")
	gt.Equal(t, orig.ToolCalls[0].ID, "call_1")
	gt.Equal(t, orig.CacheControl.Type, "ephemeral")
}

func TestNamesStartsWithGroup(t *testing.T) {
	t.Run("defaults to false", func(t *testing.T) {
		gt.True(t, !wirefmt.DefaultNames().StartsWithGroup("Rin: hello"))
	})

	t.Run("matches group prefixes", func(t *testing.T) {
		n := wirefmt.Names{GroupNames: []string{"Rin", "Saki"}}
		gt.True(t, n.StartsWithGroup("Saki: hello"))
		gt.True(t, !n.StartsWithGroup("Bob: hello"))
	})

	t.Run("predicate overrides", func(t *testing.T) {
		n := wirefmt.Names{
			GroupNames:          []string{"Rin"},
			StartsWithGroupName: func(string) bool { return false },
		}
		gt.True(t, !n.StartsWithGroup("Rin: hello"))
	})
}
