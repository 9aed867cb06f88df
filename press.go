// Package huff is a static Huffman compressor for byte sequences.
//
// Compression happens in a few separate steps:
//   - CountFrequencies scans the input and builds a FrequencyTable
//   - BuildTree merges the frequencies into a Huffman tree
//   - NewCodeTable walks the tree to assign a prefix code to each symbol
//   - Pack concatenates the codes of the input into a bit stream
//   - a Container holds the code table and the packed payload
//
// Compress and Decompress run the whole pipeline. Decompression never sees
// the original tree: it rebuilds a decoding trie from the code table that is
// stored in the container.
//
// The exported steps are useful on their own, for inspecting code tables
// or for writing a container with a different outer framing.
package huff

import "github.com/op/go-logging"

var log = logging.MustGetLogger("huff")

func init() {
	// Stay quiet unless the program configures logging for this module.
	logging.SetLevel(logging.WARNING, "huff")
}

// A Symbol is one unit of the input alphabet. The alphabet is bytes, so a
// multi-byte UTF-8 character is coded as several symbols.
type Symbol = byte

// alphabetSize is the number of distinct symbols.
const alphabetSize = 256
