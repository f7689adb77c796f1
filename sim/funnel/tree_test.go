package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Depth2_PerfectTreeWithPathIDs(t *testing.T) {
	// GIVEN a depth-2 build
	root := Build(2, 8)

	// THEN ids follow the path and only the deepest level holds input leaves
	var ids []string
	root.Walk(func(n *Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	assert.Equal(t, []string{
		"root",
		"root-L", "root-L-L", "root-L-R",
		"root-R", "root-R-L", "root-R-R",
	}, ids)

	leaves := root.Leaves()
	require.Len(t, leaves, 4)
	for _, leaf := range leaves {
		assert.Equal(t, KindInput, leaf.Kind, leaf.ID)
		assert.Nil(t, leaf.Left)
		assert.Nil(t, leaf.Right)
	}
	assert.Equal(t, KindMerger, root.Kind)
	assert.Equal(t, "buf-root-L", root.Left.Buffer.ID)
	assert.Equal(t, 8, root.Left.Buffer.Capacity)
	assert.True(t, root.Buffer.Empty())
	assert.Equal(t, 2, root.Height())
}

func TestBuild_Depth0_SingleLeaf(t *testing.T) {
	root := Build(0, 3)
	assert.Equal(t, KindInput, root.Kind)
	assert.Len(t, root.Leaves(), 1)
	assert.Equal(t, 0, root.Height())
}

func TestBuild_InvalidArguments_Panic(t *testing.T) {
	assert.Panics(t, func() { Build(-1, 8) })
	assert.Panics(t, func() { Build(2, 0) })
}

func TestSeedLeaves_AssignsLeftToRightAndResizes(t *testing.T) {
	// GIVEN a depth-2 tree and four chunks of differing length
	root := Build(2, 8)
	chunks := [][]int{{4}, {1, 9}, {3}, {}}

	// WHEN the leaves are seeded
	SeedLeaves(root, chunks)

	// THEN each leaf holds its chunk and its capacity matches the chunk length
	leaves := root.Leaves()
	for i, leaf := range leaves {
		assert.Equal(t, chunks[i], leaf.Buffer.Items, leaf.ID)
		assert.Equal(t, len(chunks[i]), leaf.Buffer.Capacity, leaf.ID)
	}
	assert.Equal(t, 4, root.Resident())

	// AND the chunks were copied, not aliased
	chunks[1][0] = 100
	assert.Equal(t, []int{1, 9}, root.Find("root-L-R").Buffer.Items)
}

func TestSeedLeaves_ChunkCountMismatch_Panics(t *testing.T) {
	root := Build(2, 8)
	assert.Panics(t, func() { SeedLeaves(root, [][]int{{1}, {2}, {3}}) })
	assert.Panics(t, func() { SeedLeaves(root, [][]int{{1}, {2}, {3}, {4}, {5}}) })
}

func TestSeedLeaves_UnsortedChunk_Panics(t *testing.T) {
	root := Build(1, 8)
	assert.Panics(t, func() { SeedLeaves(root, [][]int{{2, 1}, {3}}) })
}

func TestClone_IsIndependentOfOriginal(t *testing.T) {
	// GIVEN a seeded tree with an active node and a partially filled merger
	root := Build(2, 8)
	SeedLeaves(root, [][]int{{1, 5}, {2}, {3}, {4}})
	root.Left.Buffer.Push(0)
	root.Left.Active = true

	// WHEN it is cloned and the original is mutated afterwards
	c := root.Clone()
	root.Left.Buffer.Push(7)
	root.Left.Active = false
	_, _ = root.Find("root-L-L").Buffer.Shift()
	root.Find("root-R-R").Buffer.Items[0] = 99

	// THEN the clone still reflects the state at clone time
	assert.Equal(t, []int{0}, c.Left.Buffer.Items)
	assert.True(t, c.Left.Active)
	assert.Equal(t, []int{1, 5}, c.Find("root-L-L").Buffer.Items)
	assert.Equal(t, []int{4}, c.Find("root-R-R").Buffer.Items)
	assert.Equal(t, 1, c.Find("root-R-R").Buffer.Capacity)
}

func TestClone_EmptyBuffersStayNonNil(t *testing.T) {
	c := Build(1, 4).Clone()
	assert.NotNil(t, c.Buffer.Items)
	assert.Empty(t, c.Buffer.Items)
}

func TestFind_UnknownID_ReturnsNil(t *testing.T) {
	assert.Nil(t, Build(2, 8).Find("root-X"))
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindInput, KindMerger} {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var got Kind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}
	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("leaf")))
}
