package huff

// A FrequencyTable holds the number of times each symbol occurs in an input.
// The zero value is an empty table.
type FrequencyTable struct {
	counts [alphabetSize]uint64
	total  uint64
	n      int
}

// CountFrequencies scans src once and returns its symbol frequencies.
func CountFrequencies(src []byte) *FrequencyTable {
	f := new(FrequencyTable)
	for _, b := range src {
		f.counts[b]++
	}
	for _, c := range f.counts {
		if c > 0 {
			f.n++
		}
	}
	f.total = uint64(len(src))
	return f
}

// Count returns the number of occurrences of s.
func (f *FrequencyTable) Count(s Symbol) uint64 {
	return f.counts[s]
}

// Len returns the number of distinct symbols.
func (f *FrequencyTable) Len() int {
	return f.n
}

// Total returns the sum of all counts, which is the length of the input.
func (f *FrequencyTable) Total() uint64 {
	return f.total
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (f *FrequencyTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, f.n)
	for i, c := range f.counts {
		if c > 0 {
			syms = append(syms, Symbol(i))
		}
	}
	return syms
}
