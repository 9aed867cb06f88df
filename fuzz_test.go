package huff

import (
	"bytes"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("AAAA"))
	f.Add([]byte("aaabbc"))
	f.Add(testText(500))
	f.Fuzz(func(t *testing.T, data []byte) {
		compressed, err := Compress(nil, data)
		if err != nil {
			t.Fatal(err)
		}
		decompressed, err := Decompress(nil, compressed)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(decompressed, data) {
			t.Fatal("decompressed output doesn't match")
		}
	})
}

func FuzzDecompress(f *testing.F) {
	for _, s := range []string{"", "AAAA", "aaabbc", "the of and to in"} {
		c, _ := Compress(nil, []byte(s))
		f.Add(c)
		framed, _ := AppendFrame(nil, []byte(s), true)
		f.Add(framed)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		out, err := Decompress([]byte("dst"), data)
		if err != nil && string(out) != "dst" {
			t.Fatalf("dst changed on error: %q", out)
		}
		if err == nil {
			// Whatever decodes must encode back to a container of the same
			// content.
			again, err := Compress(nil, out[3:])
			if err != nil {
				t.Fatal(err)
			}
			if back, err := Decompress(nil, again); err != nil || !bytes.Equal(back, out[3:]) {
				t.Fatalf("re-encoding failed: %v", err)
			}
		}
		DecompressFrame(nil, data)
	})
}
