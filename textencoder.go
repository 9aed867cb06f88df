package huff

import (
	"fmt"
	"strconv"
)

// A TextEncoder produces a human-readable listing of a code table, one
// symbol per line, with its code in place of the packed bits.
type TextEncoder struct {
	// Counts, if not nil, adds each symbol's frequency and the number of
	// payload bits it accounts for, followed by a total line.
	Counts *FrequencyTable
}

// Encode appends the listing of t to dst.
func (e TextEncoder) Encode(dst []byte, t *CodeTable) []byte {
	for _, s := range t.Symbols() {
		code := t.codes[s]
		dst = append(dst, fmt.Sprintf("%-6s %3d ", symbolText(s), code.Len)...)
		if e.Counts != nil {
			n := e.Counts.Count(s)
			dst = append(dst, fmt.Sprintf("%10d %12d ", n, n*uint64(code.Len))...)
		}
		dst = append(dst, code.String()...)
		dst = append(dst, '\n')
	}
	if e.Counts != nil {
		bits := t.EncodedBits(e.Counts)
		dst = append(dst, fmt.Sprintf("%d symbols, %d bytes in, %d payload bits\n", t.Len(), e.Counts.Total(), bits)...)
	}
	return dst
}

func symbolText(s Symbol) string {
	if s >= 0x21 && s < 0x7f && s != '\'' {
		return "'" + string(rune(s)) + "'"
	}
	return "0x" + strconv.FormatUint(uint64(s), 16)
}
