// Package sim provides the step-by-step funnel sort simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - funnel/tree.go: the funnel tree (input leaves and merger nodes) and its deep copy
//   - funnelsort.go: partitioning, the recursive fill/merge protocol and frame emission
//   - trace/record.go: the Frame snapshot handed to playback and rendering
//
// # Architecture
//
// The engine is a lazy producer: Engine.Frames returns an iter.Seq that
// suspends at every emission point (initial seeding, node activation,
// per-element merge, per-element output, completion). Each frame carries a
// deep copy of the tree, so consumers may retain and replay frames in any
// order. Sub-packages:
//   - sim/funnel/: tree structure and buffer bookkeeping, no fill logic
//   - sim/trace/: frame data types, the seekable Trace and its summary
//   - sim/narrate/: optional narration of a frame description via an LLM
//
// Randomness is confined to input generation (GenerateInput with a
// PartitionedRNG); the fill protocol is deterministic and ties always go to
// the left child.
//
// # Extension Points
//
// Funnel depth and merger buffer capacity are Config fields threaded into
// funnel.Build and SeedLeaves rather than constants. The visualizer default is
// the 4-funnel (Depth 2) with buffers of 8.
package sim
