package wirefmt_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/catalpa-labs/wirefmt"
)

func TestTranscriptRoundTrip(t *testing.T) {
	orig := wirefmt.NewTranscript(wirefmt.ProviderClaude, []wirefmt.Message{
		{Role: wirefmt.RoleSystem, Content: wirefmt.TextContent("be nice")},
		{Role: wirefmt.RoleUser, Content: wirefmt.TextContent("hello")},
	})

	data, err := json.Marshal(orig)
	gt.NoError(t, err)

	var restored wirefmt.Transcript
	gt.NoError(t, json.Unmarshal(data, &restored))
	gt.Equal(t, &restored, orig)
}

func TestTranscriptVersionMismatch(t *testing.T) {
	var tr wirefmt.Transcript
	err := json.Unmarshal([]byte(`{"provider":"openai","version":99,"messages":[]}`), &tr)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, wirefmt.ErrTranscriptVersionMismatch))
}

func TestTranscriptClone(t *testing.T) {
	orig := wirefmt.NewTranscript(wirefmt.ProviderOpenAI, []wirefmt.Message{
		{Role: wirefmt.RoleUser, Content: wirefmt.TextContent("hi")},
	})

	clone := orig.Clone()
	clone.Messages[0].Content = wirefmt.TextContent("changed")
	gt.Equal(t, orig.Messages[0].Content.Text, "hi")
}
