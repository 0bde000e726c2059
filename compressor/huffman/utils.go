package huffman

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/chronos-tachyon/assert"
)

// noChild marks an absent child link. Leaves have both links absent.
const noChild = int32(-1)

// internalSymbol is the symbol value of combination nodes.
const internalSymbol = int16(-1)

type node struct {
	symbol      int16
	weight      int
	left, right int32
}

// nodeArena owns every node of one encoding run. Nodes are addressed by
// index into the backing slice, never by pointer, and the whole slice is
// dropped in one step when the session resets. Capacity is fixed up front
// at 2k-1 for k distinct symbols.
type nodeArena struct {
	nodes []node
}

func newNodeArena(capacity int) *nodeArena {
	newArena := new(nodeArena)
	newArena.nodes = make([]node, 0, capacity)
	return newArena
}

func (arena *nodeArena) alloc(symbol int16, weight int, left, right int32) (int32, error) {
	if len(arena.nodes) == cap(arena.nodes) {
		return noChild, fmt.Errorf("%w: node arena capacity %d exhausted", ErrAllocation, cap(arena.nodes))
	}
	arena.nodes = append(arena.nodes, node{
		symbol: symbol,
		weight: weight,
		left:   left,
		right:  right,
	})
	return int32(len(arena.nodes) - 1), nil
}

func (arena *nodeArena) at(index int32) *node {
	assert.Assertf(index >= 0 && int(index) < len(arena.nodes), "node index %d out of range [0, %d)", index, len(arena.nodes))
	return &arena.nodes[index]
}

func (arena *nodeArena) size() int {
	return len(arena.nodes)
}

func (n *node) isLeaf() bool {
	return n.left == noChild && n.right == noChild
}

// nodeHeap is a min-heap of arena indices ordered by node weight. Equal
// weights are broken by arena index ascending: leaves are allocated in
// ascending symbol order before any combination node, so among equal
// weights the smaller symbol wins and combination nodes rank after any
// equal-weight node created earlier. This keeps the emitted bit-string
// identical across runs and platforms.
type nodeHeap struct {
	arena *nodeArena
	items []int32
}

func (hub *nodeHeap) Push(item any) {
	hub.items = append(hub.items, item.(int32))
}

func (hub *nodeHeap) Pop() any {
	popped := hub.items[len(hub.items)-1]
	hub.items = hub.items[:len(hub.items)-1]
	return popped
}

func (hub *nodeHeap) Len() int {
	return len(hub.items)
}

func (hub *nodeHeap) Less(i, j int) bool {
	x, y := hub.arena.at(hub.items[i]), hub.arena.at(hub.items[j])
	if x.weight != y.weight {
		return x.weight < y.weight
	}
	return hub.items[i] < hub.items[j]
}

func (hub *nodeHeap) Swap(i, j int) {
	hub.items[i], hub.items[j] = hub.items[j], hub.items[i]
}

var _ heap.Interface = (*nodeHeap)(nil)

func (hub *nodeHeap) insert(index int32) {
	heap.Push(hub, index)
}

func (hub *nodeHeap) extractMin() (int32, error) {
	if len(hub.items) == 0 {
		return noChild, fmt.Errorf("huffman: extract from empty queue")
	}
	return heap.Pop(hub).(int32), nil
}

// buildTree allocates one leaf per distinct symbol into the arena and
// combines the two lightest nodes until a single root remains. The index
// of the root is returned. An empty frequency map is a hard failure, not
// a degenerate tree.
func buildTree(symbolFreq map[byte]int, arena *nodeArena) (int32, error) {
	if len(symbolFreq) == 0 {
		return noChild, ErrEmptyInput
	}
	var keys []byte
	for b := range symbolFreq {
		keys = append(keys, b)
	}
	slices.Sort(keys)
	treehub := &nodeHeap{arena: arena}
	for _, key := range keys {
		leaf, err := arena.alloc(int16(key), symbolFreq[key], noChild, noChild)
		if err != nil {
			return noChild, err
		}
		treehub.items = append(treehub.items, leaf)
	}
	heap.Init(treehub)
	for treehub.Len() > 1 {
		x, err := treehub.extractMin()
		if err != nil {
			return noChild, err
		}
		y, err := treehub.extractMin()
		if err != nil {
			return noChild, err
		}
		combined, err := arena.alloc(internalSymbol, arena.at(x).weight+arena.at(y).weight, x, y)
		if err != nil {
			return noChild, err
		}
		treehub.insert(combined)
	}
	return treehub.extractMin()
}

// extractCodes walks the tree depth-first, appending '0' descending left
// and '1' descending right, and records the accumulated path at each
// leaf. A root that is itself a leaf gets the fallback code "1", since an
// empty code cannot be decoded.
func extractCodes(arena *nodeArena, root int32) map[byte]string {
	symbolEnc := make(map[byte]string)
	var walk func(index int32, currentPrefix []byte)
	walk = func(index int32, currentPrefix []byte) {
		n := arena.at(index)
		if n.isLeaf() {
			if len(currentPrefix) == 0 {
				symbolEnc[byte(n.symbol)] = "1"
			} else {
				symbolEnc[byte(n.symbol)] = string(currentPrefix)
			}
			return
		}
		walk(n.left, append(currentPrefix, byte('0')))
		walk(n.right, append(currentPrefix, byte('1')))
	}
	walk(root, []byte{})
	return symbolEnc
}
