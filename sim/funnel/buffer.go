// Package funnel implements the funnel tree: a perfect binary tree of bounded,
// always-sorted FIFO buffers that forms a k-way merging network.
// This package has no dependencies on sim/ — it owns structure and buffer
// bookkeeping only; the fill/merge protocol lives in the engine.
package funnel

import (
	"fmt"
	"strings"
)

// Buffer is a bounded FIFO holding a sorted run of values.
// Items[0] is the smallest unconsumed value.
type Buffer struct {
	ID       string `json:"id" yaml:"id"`
	Items    []int  `json:"items" yaml:"items"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

func newBuffer(id string, capacity int) Buffer {
	return Buffer{ID: id, Items: make([]int, 0), Capacity: capacity}
}

// Len returns the number of values currently held.
func (b *Buffer) Len() int {
	return len(b.Items)
}

// Empty reports whether the buffer holds no values.
func (b *Buffer) Empty() bool {
	return len(b.Items) == 0
}

// Full reports whether the buffer has reached its capacity.
func (b *Buffer) Full() bool {
	return len(b.Items) >= b.Capacity
}

// Front returns the smallest unconsumed value without removing it.
// ok is false if the buffer is empty.
func (b *Buffer) Front() (v int, ok bool) {
	if len(b.Items) == 0 {
		return 0, false
	}
	return b.Items[0], true
}

// Shift removes and returns the front value. ok is false if the buffer is empty.
func (b *Buffer) Shift() (v int, ok bool) {
	if len(b.Items) == 0 {
		return 0, false
	}
	v = b.Items[0]
	b.Items = b.Items[1:]
	return v, true
}

// Push appends v to the back of the buffer.
// Pushing into a full buffer, or pushing a value smaller than the current back,
// breaks the buffer invariants and panics.
func (b *Buffer) Push(v int) {
	if b.Full() {
		panic(fmt.Sprintf("Push: buffer %s is full (capacity %d)", b.ID, b.Capacity))
	}
	if n := len(b.Items); n > 0 && b.Items[n-1] > v {
		panic(fmt.Sprintf("Push: %d after %d would unsort buffer %s", v, b.Items[n-1], b.ID))
	}
	b.Items = append(b.Items, v)
}

func (b *Buffer) clone() Buffer {
	items := make([]int, len(b.Items))
	copy(items, b.Items)
	return Buffer{ID: b.ID, Items: items, Capacity: b.Capacity}
}

func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range b.Items {
		sb.WriteString(fmt.Sprint(val))
		if i < len(b.Items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return fmt.Sprintf("%s%s/%d", b.ID, sb.String(), b.Capacity)
}
