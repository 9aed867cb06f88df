package huff

import "errors"

var (
	// ErrEmptyAlphabet is returned by BuildTree when the frequency table has
	// no symbols.
	ErrEmptyAlphabet = errors.New("huff: empty alphabet")

	// ErrMalformedCodeTable indicates a code table that is not prefix-free,
	// or that has empty or duplicate entries.
	ErrMalformedCodeTable = errors.New("huff: malformed code table")

	// ErrTruncatedPayload indicates that the declared payload bit count
	// needs more bytes than the container holds.
	ErrTruncatedPayload = errors.New("huff: truncated payload")

	// ErrCorruptContainer indicates a container whose structure does not
	// parse or whose fields are inconsistent.
	ErrCorruptContainer = errors.New("huff: corrupt container")

	// ErrTooLarge is returned when the encoded payload would need more bits
	// than the container's 32-bit count can declare.
	ErrTooLarge = errors.New("huff: input too large")

	// ErrFrame indicates a frame header that is not valid.
	ErrFrame = errors.New("huff: invalid frame")

	// ErrChecksum indicates that the content checksum in a frame does not
	// match the decompressed data.
	ErrChecksum = errors.New("huff: checksum mismatch")
)
