package huffman

// node is a Huffman tree node; child0 and child1 are nil on leaves.
type node struct {
	weight int
	order  int // creation sequence, used to break weight ties
	symbol byte
	child0 *node
	child1 *node
}

func (n *node) leaf() bool { return n.child0 == nil }

// countSymbols tallies the distinct symbols of src and returns a leaf per
// symbol, in order of first appearance. For 4-bit symbols every byte
// contributes its low nibble first, then its high nibble, which is the
// order the decompressor reassembles them in.
func countSymbols(src []byte, symbolBits int) []*node {
	var weights [256]int
	var order []byte

	tally := func(s byte) {
		if weights[s] == 0 {
			order = append(order, s)
		}
		weights[s]++
	}
	for _, b := range src {
		if symbolBits == 4 {
			tally(b & 0xF)
			tally(b >> 4)
		} else {
			tally(b)
		}
	}

	leaves := make([]*node, len(order))
	for i, s := range order {
		leaves[i] = &node{weight: weights[s], order: i, symbol: s}
	}
	return leaves
}

// buildTree repeatedly merges the two lightest nodes until one root
// remains. Ties are broken by creation order, and a merged node is ordered
// after everything created before it, so the tree shape is a pure function
// of the input.
func buildTree(leaves []*node) *node {
	queue := append([]*node(nil), leaves...)
	seq := len(queue)
	for len(queue) > 1 {
		a := takeLightest(&queue)
		b := takeLightest(&queue)
		queue = append(queue, &node{
			weight: a.weight + b.weight,
			order:  seq,
			child0: a,
			child1: b,
		})
		seq++
	}
	return queue[0]
}

func takeLightest(queue *[]*node) *node {
	q := *queue
	best := 0
	for i, n := range q {
		if n.weight < q[best].weight || (n.weight == q[best].weight && n.order < q[best].order) {
			best = i
		}
	}
	n := q[best]
	*queue = append(q[:best], q[best+1:]...)
	return n
}

// A code is the bit sequence assigned to one symbol, emitted most
// significant bit first.
type code struct {
	bits   uint64
	length int
}

// assignCodes walks the tree and records each leaf's path, 0 for child0 and
// 1 for child1. If a symbol appears on several leaves (the degenerate
// single-symbol tree), the first code found wins.
func assignCodes(root *node) (codes [256]code) {
	var walk func(n *node, bits uint64, length int)
	walk = func(n *node, bits uint64, length int) {
		if n.leaf() {
			if codes[n.symbol].length == 0 {
				codes[n.symbol] = code{bits, length}
			}
			return
		}
		walk(n.child0, bits<<1, length+1)
		walk(n.child1, bits<<1|1, length+1)
	}
	walk(root, 0, 0)
	return codes
}
