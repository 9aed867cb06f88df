package huff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// A BitWriter concatenates codes into a bit stream, most significant bit
// first, and counts the bits written. Close pads the last byte with zeros.
type BitWriter struct {
	w    *bitio.Writer
	bits uint64
}

// NewBitWriter returns a BitWriter that writes packed bytes to w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: bitio.NewWriter(w)}
}

// WriteCode appends the bits of c to the stream. An empty code, or one
// whose Packed bytes are too short for its length, is an error.
func (bw *BitWriter) WriteCode(c Code) error {
	if c.Len == 0 || !c.valid() {
		return fmt.Errorf("%w: invalid %d-bit code", ErrMalformedCodeTable, c.Len)
	}
	full := c.Len / 8
	for i := 0; i < full; i++ {
		if err := bw.w.WriteByte(c.Packed[i]); err != nil {
			return err
		}
	}
	if rem := c.Len % 8; rem > 0 {
		if err := bw.w.WriteBits(uint64(c.Packed[full]>>uint(8-rem)), uint8(rem)); err != nil {
			return err
		}
	}
	bw.bits += uint64(c.Len)
	return nil
}

// Bits returns the number of bits written so far, not counting padding.
func (bw *BitWriter) Bits() uint64 {
	return bw.bits
}

// Close writes out any partial byte, zero-padded. It does not close the
// underlying io.Writer.
func (bw *BitWriter) Close() error {
	return bw.w.Close()
}

// Pack encodes each byte of src with its code from t and returns the packed
// bit stream along with its exact length in bits.
func Pack(src []byte, t *CodeTable) (packed []byte, nbits uint64, err error) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	for _, b := range src {
		c := t.codes[b]
		if c.Len == 0 {
			return nil, 0, fmt.Errorf("%w: symbol %#02x is not in the code table", ErrMalformedCodeTable, b)
		}
		if err := bw.WriteCode(c); err != nil {
			return nil, 0, err
		}
	}
	if err := bw.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), bw.Bits(), nil
}

// A BitReader returns the bits of a packed stream one at a time, stopping
// after the declared number of bits.
type BitReader struct {
	r      *bitio.Reader
	remain uint64
}

// Unpack prepares to read exactly nbits bits from packed. packed must hold
// exactly the bytes needed for nbits bits, and any padding bits in the last
// byte must be zero.
func Unpack(packed []byte, nbits uint64) (*BitReader, error) {
	need := (nbits + 7) / 8
	switch {
	case uint64(len(packed)) < need:
		return nil, fmt.Errorf("%w: %d bits declared, %d bytes present", ErrTruncatedPayload, nbits, len(packed))
	case uint64(len(packed)) > need:
		return nil, fmt.Errorf("%w: %d bytes after the payload", ErrCorruptContainer, uint64(len(packed))-need)
	}
	if rem := nbits % 8; rem != 0 {
		if packed[len(packed)-1]&(0xff>>rem) != 0 {
			return nil, fmt.Errorf("%w: non-zero padding bits", ErrCorruptContainer)
		}
	}
	return &BitReader{r: bitio.NewReader(bytes.NewReader(packed)), remain: nbits}, nil
}

// ReadBit returns the next bit as 0 or 1. It returns io.EOF once the
// declared number of bits has been read.
func (br *BitReader) ReadBit() (byte, error) {
	if br.remain == 0 {
		return 0, io.EOF
	}
	b, err := br.r.ReadBool()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	br.remain--
	if b {
		return 1, nil
	}
	return 0, nil
}

// Remaining returns the number of bits left to read.
func (br *BitReader) Remaining() uint64 {
	return br.remain
}
