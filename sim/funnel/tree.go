package funnel

import (
	"fmt"
	"slices"
)

// Kind tags the two node variants of the funnel tree.
type Kind uint8

const (
	// KindInput is a leaf wrapping one pre-sorted chunk of the input.
	KindInput Kind = iota
	// KindMerger is an internal node that merges its two children into its buffer.
	KindMerger
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindMerger:
		return "merger"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name for JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "input":
		*k = KindInput
	case "merger":
		*k = KindMerger
	default:
		return fmt.Errorf("unknown node kind %q", text)
	}
	return nil
}

// Node is one funnel in the tree. Input nodes carry a buffer only; merger nodes
// additionally own exactly two children. Each node exclusively owns its buffer
// and children.
type Node struct {
	ID     string `json:"id" yaml:"id"`
	Kind   Kind   `json:"kind" yaml:"kind"`
	Buffer Buffer `json:"buffer" yaml:"buffer"`
	Left   *Node  `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *Node  `json:"right,omitempty" yaml:"right,omitempty"`
	// Active is set while the engine is filling this node. Presentation only.
	Active bool `json:"active" yaml:"active"`
}

// Node ID path suffixes.
const (
	RootID      = "root"
	LeftSuffix  = "-L"
	RightSuffix = "-R"
)

// Build constructs a perfect binary funnel tree of the given depth. Nodes at
// the maximum depth are input leaves, all others are mergers. Every buffer
// starts empty with the given capacity.
func Build(depth, capacity int) *Node {
	if depth < 0 {
		panic(fmt.Sprintf("Build: depth must be >= 0, got %d", depth))
	}
	if capacity < 1 {
		panic(fmt.Sprintf("Build: capacity must be >= 1, got %d", capacity))
	}
	return build(depth, 0, RootID, capacity)
}

func build(depth, level int, id string, capacity int) *Node {
	n := &Node{
		ID:     id,
		Buffer: newBuffer("buf-"+id, capacity),
	}
	if level == depth {
		n.Kind = KindInput
		return n
	}
	n.Kind = KindMerger
	n.Left = build(depth, level+1, id+LeftSuffix, capacity)
	n.Right = build(depth, level+1, id+RightSuffix, capacity)
	return n
}

// SeedLeaves assigns one pre-sorted chunk to each leaf in left-to-right order
// and resizes that leaf's capacity to the chunk length. The chunks are copied.
//
// The number of chunks must equal the number of leaves and every chunk must be
// sorted; violations are caller bugs and panic.
func SeedLeaves(root *Node, chunks [][]int) {
	leaves := root.Leaves()
	if len(chunks) != len(leaves) {
		panic(fmt.Sprintf("SeedLeaves: %d chunks for %d leaves", len(chunks), len(leaves)))
	}
	for i, leaf := range leaves {
		if !slices.IsSorted(chunks[i]) {
			panic(fmt.Sprintf("SeedLeaves: chunk %d for %s is not sorted: %v", i, leaf.ID, chunks[i]))
		}
		items := make([]int, len(chunks[i]))
		copy(items, chunks[i])
		leaf.Buffer.Items = items
		leaf.Buffer.Capacity = len(items)
	}
}

// Clone returns a deep copy of the subtree rooted at n. The copy shares no
// mutable storage with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:     n.ID,
		Kind:   n.Kind,
		Buffer: n.Buffer.clone(),
		Active: n.Active,
	}
	if n.Kind == KindMerger {
		c.Left = n.Left.Clone()
		c.Right = n.Right.Clone()
	}
	return c
}

// Walk visits the subtree in pre-order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	switch n.Kind {
	case KindMerger:
		return n.Left.Walk(fn) && n.Right.Walk(fn)
	default:
		return true
	}
}

// Leaves returns the input nodes in left-to-right order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node) bool {
		if node.Kind == KindInput {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// Resident returns the number of values held in all buffers of the subtree.
func (n *Node) Resident() int {
	total := 0
	n.Walk(func(node *Node) bool {
		total += node.Buffer.Len()
		return true
	})
	return total
}

// Find returns the node with the given ID, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Height returns the number of edges from n to its leaves.
func (n *Node) Height() int {
	h := 0
	for node := n; node != nil && node.Kind == KindMerger; node = node.Left {
		h++
	}
	return h
}
