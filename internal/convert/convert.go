// Package convert holds transform helpers shared by the provider
// converters: JSON argument parsing, data-URI handling, speaker
// prefixing and content normalization.
package convert

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/catalpa-labs/wirefmt"
)

// Conversion errors
var (
	// ErrUnsupportedContentType is returned when a content part cannot
	// be converted to the target format
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

// ParseJSONArguments attempts to parse a JSON string into a map.
// Callers fall back to wrapping the raw string on error; a nil map is
// never a valid substitute for the raw arguments.
func ParseJSONArguments(jsonStr string) (map[string]interface{}, error) {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &args); err != nil {
		return nil, goerr.Wrap(err, "failed to parse JSON arguments")
	}
	return args, nil
}

// ParseDataURI splits a data:<mime>;base64,<payload> URI into its MIME
// type and base64 payload. ok is false for anything malformed; callers
// skip such parts rather than guessing at the payload. An empty MIME
// type is returned as is, since video URIs may omit it (the caller
// applies the video/mp4 default).
func ParseDataURI(uri string) (mime, data string, ok bool) {
	if !strings.HasPrefix(uri, "data:") {
		return "", "", false
	}
	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return "", "", false
	}
	mime = uri[len("data:"):idx]
	data = uri[idx+len(";base64,"):]
	if data == "" {
		return "", "", false
	}
	return mime, data, true
}

var videoMIMEPattern = regexp.MustCompile(`^data:([^;,]+)`)

// VideoMIMEFromDataURI extracts the MIME type from a video data URI
// header, defaulting to video/mp4 when the header is not parseable.
func VideoMIMEFromDataURI(uri string) string {
	m := videoMIMEPattern.FindStringSubmatch(uri)
	if len(m) < 2 || m[1] == "" {
		return "video/mp4"
	}
	return m[1]
}

// PrefixExample applies example-turn prefixing to text. The returned
// bool reports whether name was one of the example sentinels. Prefixing
// never duplicates: text already carrying the prefix is left untouched,
// and an example-assistant turn opening with a group member's name is
// considered already attributed.
func PrefixExample(text, name string, names wirefmt.Names) (string, bool) {
	switch name {
	case wirefmt.NameExampleUser:
		prefix := names.UserName + ": "
		if !strings.HasPrefix(text, prefix) {
			text = prefix + text
		}
		return text, true
	case wirefmt.NameExampleAssistant:
		prefix := names.CharName + ": "
		if !strings.HasPrefix(text, prefix) && !names.StartsWithGroup(text) {
			text = prefix + text
		}
		return text, true
	}
	return text, false
}

// PrefixSpeaker applies the full speaker-prefix rule: example sentinels
// map to the configured user/character names, any other non-empty name
// is prepended literally. Idempotent.
func PrefixSpeaker(text, name string, names wirefmt.Names) string {
	if out, ok := PrefixExample(text, name, names); ok {
		return out
	}
	if name == "" {
		return text
	}
	prefix := name + ": "
	if !strings.HasPrefix(text, prefix) {
		text = prefix + text
	}
	return text
}
