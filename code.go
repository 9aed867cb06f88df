package huff

import (
	"fmt"
	"strings"
)

// maxCodeLen is the longest code the container format can store. A Huffman
// tree over 256 symbols is never deeper than 255.
const maxCodeLen = 255

// A Code is a packed bit string. Within each byte, bits are addressed most
// significant first.
//
// Invariants:
//   - 0 <= Len <= len(Packed)*8
//   - if Len%8 != 0, the low (8 - Len%8) bits of Packed[Len/8] are zero
type Code struct {
	Packed []byte
	Len    int
}

// packedLen returns the number of bytes needed to hold n bits.
func packedLen(n int) int {
	return (n + 7) / 8
}

// codeFromBits packs a slice of 0/1 values into a Code.
func codeFromBits(bits []byte) Code {
	c := Code{Packed: make([]byte, packedLen(len(bits))), Len: len(bits)}
	for i, b := range bits {
		if b != 0 {
			c.Packed[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return c
}

// ParseCode parses a string of '0' and '1' characters, such as "0110".
func ParseCode(s string) (Code, error) {
	bits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			bits[i] = 1
		default:
			return Code{}, fmt.Errorf("huff: invalid bit %q in code %q", s[i], s)
		}
	}
	return codeFromBits(bits), nil
}

// Bit returns bit i of c, as 0 or 1.
func (c Code) Bit(i int) byte {
	return c.Packed[i/8] >> uint(7-i%8) & 1
}

// valid reports whether c satisfies the Code invariants.
func (c Code) valid() bool {
	if c.Len < 0 || c.Len > len(c.Packed)*8 {
		return false
	}
	if c.Len%8 != 0 {
		mask := byte(0xff) >> uint(c.Len%8)
		if c.Packed[c.Len/8]&mask != 0 {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p is a prefix of c. Every code has itself as a
// prefix.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	for i := 0; i < p.Len; i++ {
		if c.Bit(i) != p.Bit(i) {
			return false
		}
	}
	return true
}

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(c.Len)
	for i := 0; i < c.Len; i++ {
		sb.WriteByte('0' + c.Bit(i))
	}
	return sb.String()
}

// A CodeTable maps symbols to their codes.
type CodeTable struct {
	codes [alphabetSize]Code
	n     int
}

// NewCodeTable derives the code of every leaf below root: a 0 is appended
// for each step to a left child and a 1 for each step to a right child.
//
// A root that is itself a leaf gets the one-bit code "0". Missing children,
// as in a tree rebuilt by CodeTable.Tree, are skipped.
func NewCodeTable(root *Node) *CodeTable {
	t := new(CodeTable)
	if root == nil {
		return t
	}
	if root.leaf {
		t.codes[root.symbol] = codeFromBits([]byte{0})
		t.n = 1
		return t
	}

	path := make([]byte, 0, 16)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.leaf {
			t.codes[n.symbol] = codeFromBits(path)
			t.n++
			return
		}
		path = append(path, 0)
		walk(n.left)
		path[len(path)-1] = 1
		walk(n.right)
		path = path[:len(path)-1]
	}
	walk(root)
	return t
}

// Code returns the code for s, and whether s is in the table.
func (t *CodeTable) Code(s Symbol) (Code, bool) {
	c := t.codes[s]
	return c, c.Len > 0
}

// Len returns the number of symbols in the table.
func (t *CodeTable) Len() int {
	return t.n
}

// Symbols returns the symbols in the table, in ascending order.
func (t *CodeTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, t.n)
	for i := range t.codes {
		if t.codes[i].Len > 0 {
			syms = append(syms, Symbol(i))
		}
	}
	return syms
}

// Set adds the code for s. It does not check that the table stays
// prefix-free; Tree does that.
func (t *CodeTable) Set(s Symbol, c Code) error {
	switch {
	case c.Len == 0:
		return fmt.Errorf("%w: empty code for symbol %#02x", ErrMalformedCodeTable, s)
	case c.Len > maxCodeLen:
		return fmt.Errorf("%w: code for symbol %#02x is %d bits long", ErrMalformedCodeTable, s, c.Len)
	case !c.valid():
		return fmt.Errorf("%w: invalid bit string for symbol %#02x", ErrMalformedCodeTable, s)
	case t.codes[s].Len > 0:
		return fmt.Errorf("%w: duplicate entry for symbol %#02x", ErrMalformedCodeTable, s)
	}
	t.codes[s] = c
	t.n++
	return nil
}

// EncodedBits returns the length in bits of the payload for an input with
// the frequencies in f. Symbols missing from t are ignored.
func (t *CodeTable) EncodedBits(f *FrequencyTable) uint64 {
	var total uint64
	for i := range t.codes {
		total += f.counts[i] * uint64(t.codes[i].Len)
	}
	return total
}

// Tree rebuilds a decoding tree from the codes alone. It starts from an
// empty root and follows the bits of each code, creating internal nodes as
// needed, and puts the symbol in a leaf at the end of the path.
//
// The rebuilt nodes have no weights, and an internal node has a nil child
// where no code continues; the tree for a single symbol with code "0" is a
// root with only a left leaf. A code that passes through or ends on
// another symbol's leaf, or ends on an internal node, means the table is not
// prefix-free.
func (t *CodeTable) Tree() (*Node, error) {
	if t.n == 0 {
		return nil, ErrEmptyAlphabet
	}

	root := new(Node)
	for i := range t.codes {
		c := t.codes[i]
		if c.Len == 0 {
			continue
		}
		s := Symbol(i)
		n := root
		for j := 0; j < c.Len; j++ {
			if n.leaf {
				return nil, fmt.Errorf("%w: code %s for %#02x extends code %s for %#02x",
					ErrMalformedCodeTable, c, s, t.codes[n.symbol], n.symbol)
			}
			next := &n.left
			if c.Bit(j) == 1 {
				next = &n.right
			}
			if *next == nil {
				*next = new(Node)
			}
			n = *next
		}
		switch {
		case n.leaf:
			return nil, fmt.Errorf("%w: symbols %#02x and %#02x share code %s",
				ErrMalformedCodeTable, n.symbol, s, c)
		case n.left != nil || n.right != nil:
			return nil, fmt.Errorf("%w: code %s for %#02x is a prefix of another code",
				ErrMalformedCodeTable, c, s)
		}
		n.leaf = true
		n.symbol = s
	}
	return root, nil
}
