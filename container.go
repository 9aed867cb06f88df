package huff

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/op/go-logging"
)

// Container format:
//
//	count    = uint32 big-endian, number of symbols K (0..256)
//	repeat K times, in ascending symbol order:
//	  symbol = 1 byte
//	  length = 1 byte, code length L in bits (1..255)
//	  code   = ceil(L/8) bytes, most significant bit first, zero-padded
//	bits     = uint32 big-endian, payload length in bits
//	payload  = ceil(bits/8) bytes, most significant bit first, zero-padded
//
// An empty input is stored with K = 0, bits = 0 and no payload bytes.
// Nothing may follow the payload.

// A Container is a self-describing compressed artifact: the code table and
// the packed payload it was used to encode.
type Container struct {
	Table   *CodeTable
	Bits    uint64 // length of the payload in bits
	Payload []byte
}

// NewContainer compresses src into a Container.
func NewContainer(src []byte) (*Container, error) {
	freq := CountFrequencies(src)
	if freq.Len() == 0 {
		return &Container{Table: new(CodeTable)}, nil
	}

	root, err := BuildTree(freq)
	if err != nil {
		return nil, err
	}
	table := NewCodeTable(root)
	if bits := table.EncodedBits(freq); bits > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload would be %d bits", ErrTooLarge, bits)
	}

	payload, nbits, err := Pack(src, table)
	if err != nil {
		return nil, err
	}
	return &Container{Table: table, Bits: nbits, Payload: payload}, nil
}

// AppendBinary appends the serialized container to dst.
func (c *Container) AppendBinary(dst []byte) ([]byte, error) {
	if c.Bits > math.MaxUint32 {
		return dst, fmt.Errorf("%w: payload is %d bits", ErrTooLarge, c.Bits)
	}
	if uint64(len(c.Payload)) != (c.Bits+7)/8 {
		return dst, fmt.Errorf("huff: payload is %d bytes, want %d for %d bits", len(c.Payload), (c.Bits+7)/8, c.Bits)
	}

	var syms []Symbol
	if c.Table != nil {
		syms = c.Table.Symbols()
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(syms)))
	for _, s := range syms {
		code := c.Table.codes[s]
		dst = append(dst, s, byte(code.Len))
		dst = append(dst, code.Packed[:packedLen(code.Len)]...)
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(c.Bits))
	return append(dst, c.Payload...), nil
}

// containerReader walks the fields of a serialized container.
type containerReader struct {
	data []byte
	pos  int
}

func (r *containerReader) next(n int, what string) ([]byte, error) {
	if len(r.data)-r.pos < n {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptContainer, what, io.ErrUnexpectedEOF)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *containerReader) uint32(what string) (uint32, error) {
	b, err := r.next(4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ParseContainer parses a serialized container. It checks the structure and
// the payload length, but not whether the code table is prefix-free; Decode
// does that.
func ParseContainer(data []byte) (*Container, error) {
	r := &containerReader{data: data}

	k, err := r.uint32("symbol count")
	if err != nil {
		return nil, err
	}
	if k > alphabetSize {
		return nil, fmt.Errorf("%w: %d symbols", ErrCorruptContainer, k)
	}

	table := new(CodeTable)
	for i := uint32(0); i < k; i++ {
		hdr, err := r.next(2, "code table entry")
		if err != nil {
			return nil, err
		}
		s, l := hdr[0], int(hdr[1])
		if l == 0 {
			return nil, fmt.Errorf("%w: zero-length code for symbol %#02x", ErrCorruptContainer, s)
		}
		packed, err := r.next(packedLen(l), "code bits")
		if err != nil {
			return nil, err
		}
		code := Code{Packed: append([]byte(nil), packed...), Len: l}
		if !code.valid() {
			return nil, fmt.Errorf("%w: non-zero padding in code for symbol %#02x", ErrCorruptContainer, s)
		}
		if err := table.Set(s, code); err != nil {
			return nil, err
		}
	}

	bits, err := r.uint32("payload bit count")
	if err != nil {
		return nil, err
	}
	switch {
	case k == 0 && bits != 0:
		return nil, fmt.Errorf("%w: %d payload bits with an empty code table", ErrCorruptContainer, bits)
	case k != 0 && bits == 0:
		return nil, fmt.Errorf("%w: code table with no payload", ErrCorruptContainer)
	}

	payload := data[r.pos:]
	need := (uint64(bits) + 7) / 8
	switch {
	case uint64(len(payload)) < need:
		return nil, fmt.Errorf("%w: %d bits declared, %d bytes present", ErrTruncatedPayload, bits, len(payload))
	case uint64(len(payload)) > need:
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptContainer, uint64(len(payload))-need)
	}

	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("parsed container: %d symbols, %d payload bits, %d bytes", k, bits, len(data))
	}
	return &Container{Table: table, Bits: uint64(bits), Payload: payload}, nil
}

// Decode appends the decoded payload to dst. It rebuilds a decoding tree
// from the code table and walks it one bit at a time, emitting a symbol and
// returning to the root at each leaf. The payload must end exactly at the end
// of a code.
func (c *Container) Decode(dst []byte) ([]byte, error) {
	if c.Table == nil || c.Table.Len() == 0 {
		if c.Bits != 0 {
			return dst, fmt.Errorf("%w: %d payload bits with an empty code table", ErrCorruptContainer, c.Bits)
		}
		return dst, nil
	}

	root, err := c.Table.Tree()
	if err != nil {
		return dst, err
	}
	br, err := Unpack(c.Payload, c.Bits)
	if err != nil {
		return dst, err
	}

	out := dst
	n := root
	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dst, err
		}
		if bit == 0 {
			n = n.left
		} else {
			n = n.right
		}
		if n == nil {
			return dst, fmt.Errorf("%w: bit pattern at offset %d matches no code", ErrCorruptContainer, c.Bits-br.Remaining()-1)
		}
		if n.leaf {
			out = append(out, n.symbol)
			n = root
		}
	}
	if n != root {
		return dst, fmt.Errorf("%w: payload ends inside a code", ErrCorruptContainer)
	}
	return out, nil
}

// Compress appends the compressed container for src to dst. An empty src is
// not an error; it produces an empty container.
func Compress(dst, src []byte) ([]byte, error) {
	c, err := NewContainer(src)
	if err != nil {
		return dst, err
	}
	out, err := c.AppendBinary(dst)
	if err != nil {
		return dst, err
	}
	log.Debugf("compressed %d bytes to %d (%d symbols, %d payload bits)", len(src), len(out)-len(dst), c.Table.Len(), c.Bits)
	return out, nil
}

// Decompress appends the original bytes of the container in src to dst.
// On error dst is returned unchanged.
func Decompress(dst, src []byte) ([]byte, error) {
	c, err := ParseContainer(src)
	if err != nil {
		return dst, err
	}
	return c.Decode(dst)
}
