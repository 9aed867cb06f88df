package huff

import "container/heap"

// A Node is a node of a Huffman tree. A leaf holds a single symbol and has no
// children. An internal node built by BuildTree has exactly two children; one
// rebuilt by CodeTable.Tree may have only one.
type Node struct {
	weight uint64
	seq    int // insertion order, for breaking ties between equal weights

	leaf   bool
	symbol Symbol

	left, right *Node
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool { return n.leaf }

// Symbol returns the symbol of a leaf. It is meaningless for internal nodes.
func (n *Node) Symbol() Symbol { return n.symbol }

// Weight returns the total frequency of the symbols below n. Nodes rebuilt
// from a code table have no weight.
func (n *Node) Weight() uint64 { return n.weight }

// Left returns the child reached by a 0 bit.
func (n *Node) Left() *Node { return n.left }

// Right returns the child reached by a 1 bit.
func (n *Node) Right() *Node { return n.right }

// nodeQueue is a min-heap ordered by weight, then by insertion order.
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) {
	*q = append(*q, x.(*Node))
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// BuildTree runs Huffman's algorithm over the symbols in freq and returns the
// root of the resulting tree.
//
// Ties are broken first-in, first-out: leaves are queued in ascending symbol
// order, each merged node is queued after every node that exists when it is
// created, and of two nodes with equal weight the one queued first is taken
// first. The first node taken becomes the left child. This makes the tree,
// and so the code table, a deterministic function of the frequencies.
//
// With a single distinct symbol the root is that symbol's leaf.
func BuildTree(freq *FrequencyTable) (*Node, error) {
	if freq == nil || freq.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	q := make(nodeQueue, 0, freq.Len())
	seq := 0
	for _, s := range freq.Symbols() {
		q = append(q, &Node{weight: freq.Count(s), seq: seq, leaf: true, symbol: s})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		a := heap.Pop(&q).(*Node)
		b := heap.Pop(&q).(*Node)
		heap.Push(&q, &Node{weight: a.weight + b.weight, seq: seq, left: a, right: b})
		seq++
	}

	root := q[0]
	log.Debugf("built tree for %d symbols, weight %d", freq.Len(), root.weight)
	return root, nil
}
