package huff

import (
	"errors"
	"io"
)

var errWriterClosed = errors.New("huff: write to closed Writer")

// A Writer is an io.WriteCloser that compresses the data written to it.
// Huffman coding needs the frequencies of the whole input before the first
// code can be written, so a Writer buffers everything and does the work in
// Close.
type Writer struct {
	Dest io.Writer

	// Frame wraps the container in a frame with a magic number.
	Frame bool

	// Checksum adds an xxHash32 checksum of the content to the frame.
	// It implies Frame.
	Checksum bool

	buf    []byte
	closed bool
}

// NewWriter returns a Writer that writes a bare container to dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{Dest: dst}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.closed {
		return 0, errWriterClosed
	}
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Close compresses the buffered data and writes it to Dest. It does not
// close Dest.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var out []byte
	var err error
	if w.Frame || w.Checksum {
		out, err = AppendFrame(nil, w.buf, w.Checksum)
	} else {
		out, err = Compress(nil, w.buf)
	}
	if err != nil {
		return err
	}
	if _, err := w.Dest.Write(out); err != nil {
		return err
	}
	log.Debugf("writer: %d bytes in, %d bytes out", len(w.buf), len(out))
	return nil
}

// Reset discards any buffered data and prepares w to write a new stream to
// newDest, keeping its options.
func (w *Writer) Reset(newDest io.Writer) {
	w.Dest = newDest
	w.buf = w.buf[:0]
	w.closed = false
}
