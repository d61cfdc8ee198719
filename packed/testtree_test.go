package packed

import (
	"testing"

	"github.com/forestrie/go-packedmerkle/treetesting"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) treetesting.TestContext {
	return treetesting.NewTestContext(t, treetesting.TestConfig{
		Seed:            1234,
		TestLabelPrefix: "packed",
	})
}

func newTestTree(t *testing.T, payloads [][]byte) *Tree {
	tc := newTestContext(t)
	tree, err := FromLeaves(payloads, WithLogger(tc.GetLog()))
	require.NoError(t, err)
	return tree
}

// requirePacked checks the size, packing and hashing rules and that the index and data store agree with the
// trailing leaf slots
func requirePacked(t *testing.T, tree *Tree) {
	t.Helper()

	if tree.Size() == 0 {
		require.Equal(t, uint64(0), tree.Leaves())
	} else {
		require.Equal(t, 2*tree.Leaves()-1, tree.Size())
	}
	require.True(t, tree.VerifyTree(), "tree does not verify: %s", nodesString(tree, " "))

	require.Len(t, tree.index, int(tree.Leaves()))
	first := FirstLeaf(tree.Leaves())
	for ordinal := uint64(0); ordinal < tree.Leaves(); ordinal++ {
		key, ok := tree.IthLeaf(ordinal)
		require.True(t, ok)
		pos, ok := tree.Position(key)
		require.True(t, ok, "leaf %d (%s) is not indexed", ordinal, key)
		require.Equal(t, first+ordinal, pos)
	}
	for key := range tree.data {
		_, ok := tree.Position(key)
		require.True(t, ok, "payload for %s has no leaf", key)
	}
}

// requireProvable checks every known leaf has a verifiable path
func requireProvable(t *testing.T, tree *Tree) {
	t.Helper()
	for key := range tree.Payloads() {
		path, ok := tree.Path(key)
		require.True(t, ok)
		require.Len(t, path, Depth(tree.index[key]))
		require.True(t, tree.VerifyPath(key, path), "path for %s: %s", key, PathString(path, ", "))
	}
}

// recursiveNode derives the node at i straight from the leaves, without
// looking at any stored interior value
func recursiveNode(tree *Tree, i uint64) Key {
	if LeftChild(i) >= tree.Size() {
		return tree.nodes[i].key
	}
	return NodeHash(DefaultHasher(), recursiveNode(tree, RightChild(i)), recursiveNode(tree, LeftChild(i)))
}

func deleteCase(size, leaves, i uint64) string {
	switch {
	case i == 0:
		return "last"
	case leaves%2 == 1 && i == size-leaves:
		return "unpaired"
	case i == size-1 || i == size-2:
		return "farthest"
	}
	return "general"
}
