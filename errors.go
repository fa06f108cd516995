package wirefmt

import "errors"

var (
	// ErrInvalidMessage is returned when a message violates the input
	// contract, e.g. a missing role.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidContent is returned when message content is neither a
	// string nor a part array.
	ErrInvalidContent = errors.New("invalid message content")

	// ErrTranscriptVersionMismatch is returned when deserializing a
	// transcript with an unsupported format version.
	ErrTranscriptVersionMismatch = errors.New("transcript version mismatch")
)
