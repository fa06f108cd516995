package wirefmt

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// TranscriptVersion is the current transcript serialization format.
const TranscriptVersion = 1

// Transcript is a serializable canonical conversation. It gives hosts a
// stable on-disk form independent of any provider's wire format.
type Transcript struct {
	Provider Provider  `json:"provider,omitempty"`
	Version  int       `json:"version"`
	Messages []Message `json:"messages"`
}

// NewTranscript creates a transcript at the current format version.
func NewTranscript(provider Provider, messages []Message) *Transcript {
	return &Transcript{
		Provider: provider,
		Version:  TranscriptVersion,
		Messages: CloneMessages(messages),
	}
}

// UnmarshalJSON implements json.Unmarshaler with version validation.
// Returns ErrTranscriptVersionMismatch for any other format version.
func (x *Transcript) UnmarshalJSON(data []byte) error {
	type transcriptAlias Transcript
	var t transcriptAlias
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}

	if t.Version != TranscriptVersion {
		return goerr.Wrap(ErrTranscriptVersionMismatch, "unsupported transcript version",
			goerr.Value("got", t.Version),
			goerr.Value("want", TranscriptVersion),
		)
	}

	*x = Transcript(t)
	return nil
}

// Clone returns a deep copy of the transcript.
func (x *Transcript) Clone() *Transcript {
	if x == nil {
		return nil
	}
	return &Transcript{
		Provider: x.Provider,
		Version:  x.Version,
		Messages: CloneMessages(x.Messages),
	}
}
