package huff

import (
	"errors"
	"math/rand"
	"testing"
)

func TestBuildTreeEmpty(t *testing.T) {
	if _, err := BuildTree(CountFrequencies(nil)); !errors.Is(err, ErrEmptyAlphabet) {
		t.Fatalf("got %v, want ErrEmptyAlphabet", err)
	}
	if _, err := BuildTree(nil); !errors.Is(err, ErrEmptyAlphabet) {
		t.Fatalf("nil table: got %v, want ErrEmptyAlphabet", err)
	}
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	root, err := BuildTree(CountFrequencies([]byte("AAAA")))
	if err != nil {
		t.Fatal(err)
	}
	if !root.IsLeaf() || root.Symbol() != 'A' || root.Weight() != 4 {
		t.Fatalf("got leaf=%v symbol=%q weight=%d, want leaf 'A' with weight 4", root.IsLeaf(), root.Symbol(), root.Weight())
	}
}

func TestBuildTreeTieBreak(t *testing.T) {
	// c(1) and b(2) merge first, c on the left. The merged node ties with
	// a(3) and was queued later, so a goes left of the root.
	root, err := BuildTree(CountFrequencies([]byte("aaabbc")))
	if err != nil {
		t.Fatal(err)
	}
	if root.Weight() != 6 {
		t.Fatalf("root weight = %d, want 6", root.Weight())
	}
	if l := root.Left(); !l.IsLeaf() || l.Symbol() != 'a' {
		t.Fatalf("left of root is not leaf 'a'")
	}
	r := root.Right()
	if r.IsLeaf() || r.Weight() != 3 {
		t.Fatalf("right of root is not an internal node of weight 3")
	}
	if r.Left().Symbol() != 'c' || r.Right().Symbol() != 'b' {
		t.Fatalf("got children %q, %q; want 'c', 'b'", r.Left().Symbol(), r.Right().Symbol())
	}
}

func TestBuildTreeEqualWeights(t *testing.T) {
	// Four equal weights: (a,b) then (c,d), then the two pairs in the order
	// they were made.
	root, err := BuildTree(CountFrequencies([]byte("abcd")))
	if err != nil {
		t.Fatal(err)
	}
	want := map[Symbol]string{'a': "00", 'b': "01", 'c': "10", 'd': "11"}
	table := NewCodeTable(root)
	for s, code := range want {
		if c, _ := table.Code(s); c.String() != code {
			t.Errorf("code(%q) = %s, want %s", s, c, code)
		}
	}
}

// checkTree verifies that every internal node has two children and weighs
// as much as they do, and returns the number of leaves.
func checkTree(t *testing.T, n *Node) int {
	t.Helper()
	if n.IsLeaf() {
		if n.Left() != nil || n.Right() != nil {
			t.Fatalf("leaf %q has children", n.Symbol())
		}
		return 1
	}
	if n.Left() == nil || n.Right() == nil {
		t.Fatalf("internal node with a missing child")
	}
	if n.Weight() != n.Left().Weight()+n.Right().Weight() {
		t.Fatalf("internal node weight %d != %d + %d", n.Weight(), n.Left().Weight(), n.Right().Weight())
	}
	return checkTree(t, n.Left()) + checkTree(t, n.Right())
}

func TestBuildTreeShape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs := [][]byte{
		testText(5000),
		randomBytes(rng, 5000, 256),
		skewedBytes(rng, 5000, 40),
		[]byte("ab"),
	}
	for i, data := range inputs {
		freq := CountFrequencies(data)
		root, err := BuildTree(freq)
		if err != nil {
			t.Fatal(err)
		}
		if leaves := checkTree(t, root); leaves != freq.Len() {
			t.Errorf("input %d: %d leaves, want %d", i, leaves, freq.Len())
		}
		if root.Weight() != uint64(len(data)) {
			t.Errorf("input %d: root weight %d, want %d", i, root.Weight(), len(data))
		}
	}
}

func TestBuildTreeDeterministic(t *testing.T) {
	data := testText(3000)
	a, _ := BuildTree(CountFrequencies(data))
	b, _ := BuildTree(CountFrequencies(data))
	ta, tb := NewCodeTable(a), NewCodeTable(b)
	for _, s := range ta.Symbols() {
		ca, _ := ta.Code(s)
		cb, _ := tb.Code(s)
		if ca.String() != cb.String() {
			t.Fatalf("code for %q differs between runs: %s, %s", s, ca, cb)
		}
	}
}
