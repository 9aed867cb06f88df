package huff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/xxHash/xxHash32"
)

// Frame format:
//
//	magic     = "HUF1"
//	flags     = 1 byte; bit 0 set if a content checksum follows the container
//	length    = uint32 big-endian, length of the container
//	container = a serialized Container
//	checksum  = uint32 little-endian xxHash32 (seed 0) of the original content
//
// A bare container always starts with two zero bytes, so a frame can be
// told apart from one by its first byte.
const (
	frameMagic        = "HUF1"
	frameFlagChecksum = 1 << 0
	frameHeaderSize   = len(frameMagic) + 1 + 4
)

func contentChecksum(b []byte) uint32 {
	h := xxHash32.New(0)
	h.Write(b)
	return h.Sum32()
}

// AppendFrame compresses src and appends it to dst inside a frame,
// optionally followed by a checksum of src.
func AppendFrame(dst, src []byte, checksum bool) ([]byte, error) {
	c, err := NewContainer(src)
	if err != nil {
		return dst, err
	}

	var flags byte
	if checksum {
		flags |= frameFlagChecksum
	}
	out := append(dst, frameMagic...)
	out = append(out, flags)
	lenPos := len(out)
	out = append(out, 0, 0, 0, 0)
	out, err = c.AppendBinary(out)
	if err != nil {
		return dst, err
	}
	binary.BigEndian.PutUint32(out[lenPos:], uint32(len(out)-lenPos-4))

	if checksum {
		out = binary.LittleEndian.AppendUint32(out, contentChecksum(src))
	}
	return out, nil
}

// IsFrame reports whether b starts with the frame magic number.
func IsFrame(b []byte) bool {
	return bytes.HasPrefix(b, []byte(frameMagic))
}

// DecompressFrame appends the content of the frame in src to dst, verifying
// the checksum if the frame has one.
func DecompressFrame(dst, src []byte) ([]byte, error) {
	if len(src) < frameHeaderSize || !IsFrame(src) {
		return dst, fmt.Errorf("%w: missing header", ErrFrame)
	}
	flags := src[len(frameMagic)]
	if flags&^frameFlagChecksum != 0 {
		return dst, fmt.Errorf("%w: unknown flags %#02x", ErrFrame, flags)
	}
	n := uint64(binary.BigEndian.Uint32(src[len(frameMagic)+1:]))
	rest := src[frameHeaderSize:]

	trailer := uint64(0)
	if flags&frameFlagChecksum != 0 {
		trailer = 4
	}
	if uint64(len(rest)) != n+trailer {
		return dst, fmt.Errorf("%w: frame declares %d bytes, %d present", ErrFrame, n+trailer, len(rest))
	}

	out, err := Decompress(dst, rest[:n])
	if err != nil {
		return dst, err
	}
	if trailer > 0 {
		want := binary.LittleEndian.Uint32(rest[n:])
		if got := contentChecksum(out[len(dst):]); got != want {
			return dst, fmt.Errorf("%w: got %08x, want %08x", ErrChecksum, got, want)
		}
	}
	return out, nil
}

// NewReader reads all of r, which may hold a bare container or a frame, and
// returns a reader over the decompressed content.
func NewReader(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var content []byte
	if IsFrame(data) {
		content, err = DecompressFrame(nil, data)
	} else {
		content, err = Decompress(nil, data)
	}
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(content), nil
}
