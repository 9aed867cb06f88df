package huff

import (
	"math/rand"
	"strings"
)

var testWords = strings.Fields(`
	the of and to in is that it for as with was his he be on by at have this
	which from or had but not are all were light rays colours glass prism
	refraction reflected experiment same more when they than other one into
	white red violet green yellow blue orange indigo image sun paper hole
`)

// testText returns n bytes of deterministic word salad with a skewed,
// text-like byte distribution.
func testText(n int) []byte {
	rng := rand.New(rand.NewSource(1))
	var sb strings.Builder
	for sb.Len() < n {
		// Favour the first words to skew the distribution.
		i := rng.Intn(len(testWords))
		if rng.Intn(2) == 0 {
			i /= 4
		}
		sb.WriteString(testWords[i])
		switch rng.Intn(12) {
		case 0:
			sb.WriteString(".\n")
		case 1:
			sb.WriteString(", ")
		default:
			sb.WriteByte(' ')
		}
	}
	return []byte(sb.String()[:n])
}

// randomBytes returns n bytes drawn from the first alphabet byte values.
func randomBytes(rng *rand.Rand, n, alphabet int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Intn(alphabet))
	}
	return b
}

// skewedBytes returns n bytes where symbol i is roughly twice as likely as
// symbol i+1, which gives deep trees.
func skewedBytes(rng *rand.Rand, n, alphabet int) []byte {
	b := make([]byte, n)
	for i := range b {
		s := 0
		for s < alphabet-1 && rng.Intn(2) == 0 {
			s++
		}
		b[i] = byte(s)
	}
	return b
}
