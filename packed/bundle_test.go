package packed

import (
	"testing"

	"github.com/forestrie/go-packedmerkle/treetesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveFor(t *testing.T, source *Tree) *Tree {
	t.Helper()
	root, ok := source.Root()
	require.True(t, ok)
	tc := newTestContext(t)
	replica, err := Reserve(root, source.Leaves(), WithLogger(tc.GetLog()))
	require.NoError(t, err)
	return replica
}

func TestReserve(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(6))
	replica := reserveFor(t, source)

	sourceRoot, _ := source.Root()
	root, ok := replica.Root()
	require.True(t, ok)
	assert.Equal(t, sourceRoot, root)
	assert.Equal(t, uint64(6), replica.Leaves())
	assert.Equal(t, uint64(11), replica.Size())
	assert.False(t, replica.Complete())
	assert.True(t, replica.VerifyTree())

	nodes := replica.Nodes()
	assert.NotNil(t, nodes[0])
	for _, k := range nodes[1:] {
		assert.Nil(t, k)
	}

	_, ok = replica.IthLeaf(0)
	assert.False(t, ok)
	_, ok = replica.QueryBundle(0)
	assert.False(t, ok)

	_, err := Reserve(root, 0)
	assert.ErrorIs(t, err, ErrReserveEmpty)
}

func TestReserveRefusesMutation(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(3))
	replica := reserveFor(t, source)

	_, err := replica.Push([]byte("tx9"))
	assert.ErrorIs(t, err, ErrReplicaIncomplete)

	key, _ := source.IthLeaf(0)
	_, err = replica.Delete(key)
	assert.ErrorIs(t, err, ErrReplicaIncomplete)
}

func TestQueryBundle(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(7))

	for ordinal := uint64(0); ordinal < 7; ordinal++ {
		b, ok := source.QueryBundle(ordinal)
		require.True(t, ok)
		key, _ := source.IthLeaf(ordinal)
		assert.Equal(t, key, source.LeafHash(b.Data))
		assert.True(t, source.VerifyPath(key, b.Path))
	}
	_, ok := source.QueryBundle(7)
	assert.False(t, ok)

	// the bundle does not alias the source payload
	b, _ := source.QueryBundle(0)
	b.Data[0] = 'X'
	data, _ := source.Data(source.LeafHash([]byte("tx1")))
	assert.Equal(t, []byte("tx1"), data)
}

func TestInsertBundleFillsPath(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(4))
	replica := reserveFor(t, source)

	// ordinal 0 is at 3, its path covers 4, 1 and 2
	ok, err := Transfer(source, replica, 0)
	require.NoError(t, err)
	require.True(t, ok)

	for _, i := range []uint64{0, 1, 2, 3, 4} {
		got, set := replica.Node(i)
		require.True(t, set, "slot %d", i)
		want, _ := source.Node(i)
		assert.Equal(t, want, got, "slot %d", i)
	}
	for _, i := range []uint64{5, 6} {
		_, set := replica.Node(i)
		assert.False(t, set, "slot %d", i)
	}

	// the sibling leaf is known by key, but its payload is not
	sibling, ok := replica.IthLeaf(1)
	require.True(t, ok)
	_, ok = replica.Position(sibling)
	assert.True(t, ok)
	_, ok = replica.QueryBundle(1)
	assert.False(t, ok)

	// the replica can now serve ordinal 0 itself
	b, ok := replica.QueryBundle(0)
	require.True(t, ok)
	assert.Equal(t, []byte("tx1"), b.Data)
	assert.True(t, replica.VerifyTree())
}

func TestInsertBundleIdempotent(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(5))
	replica := reserveFor(t, source)

	b, ok := source.QueryBundle(2)
	require.True(t, ok)

	ok, err := replica.InsertBundle(b)
	require.NoError(t, err)
	require.True(t, ok)
	nodes := replica.Nodes()

	ok, err = replica.InsertBundle(b)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, nodes, replica.Nodes())

	// a complete tree accepts its own bundles without change
	sourceNodes := source.Nodes()
	ok, err = source.InsertBundle(b)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sourceNodes, source.Nodes())
}

func TestInsertBundleProofMismatch(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(5))
	other := newTestTree(t, [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d"), []byte("e")})
	replica := reserveFor(t, source)

	for ordinal := uint64(0); ordinal < 5; ordinal++ {
		ok, err := Transfer(other, replica, ordinal)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	b, _ := source.QueryBundle(1)
	b.Data = []byte("forged")
	ok, err := replica.InsertBundle(b)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, k := range replica.Nodes()[1:] {
		assert.Nil(t, k)
	}
	assert.Empty(t, replica.Payloads())

	empty := newTestTree(t, nil)
	b, _ = source.QueryBundle(0)
	ok, err = empty.InsertBundle(b)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestInsertBundleShapeMismatch checks a replica reserved with the wrong leaf
// count rejects a path that runs off the end of its array
func TestInsertBundleShapeMismatch(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(5))
	root, _ := source.Root()
	replica, err := Reserve(root, 4)
	require.NoError(t, err)

	// ordinal 4 of a 5 leaf tree is at 8, beyond the 7 slots of a 4 leaf tree
	ok, err := Transfer(source, replica, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBundlePosition(t *testing.T) {
	// 3 leaves, size 5, leaves at 2, 3, 4
	tree := newTestTree(t, treetesting.TxPayloads(3))
	tests := []struct {
		name string
		path Path
		want uint64
		ok   bool
	}{
		{"empty path addresses the root, which is not a leaf", Path{}, 0, false},
		{"leaf at 2", Path{{Side: Right}}, 2, true},
		{"interior node at 1", Path{{Side: Left}}, 0, false},
		{"leaf at 3", Path{{Side: Left}, {Side: Left}}, 3, true},
		{"leaf at 4", Path{{Side: Right}, {Side: Left}}, 4, true},
		{"past the end", Path{{Side: Left}, {Side: Right}}, 0, false},
		{"bad side", Path{{Side: 7}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tree.bundlePosition(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestInsertBundleSlotConflict corrupts a replica slot and checks the next
// verified bundle touching it is reported, not absorbed
func TestInsertBundleSlotConflict(t *testing.T) {
	source := newTestTree(t, treetesting.TxPayloads(4))
	replica := reserveFor(t, source)

	ok, err := Transfer(source, replica, 0)
	require.NoError(t, err)
	require.True(t, ok)

	// slot 5 is the sibling of ordinal 3 (at 6)
	replica.setNode(5, replica.LeafHash([]byte("a faulty peer's leaf")))
	before := replica.Nodes()

	ok, err = Transfer(source, replica, 3)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, ok)

	assert.Equal(t, before, replica.Nodes())
	_, ok = replica.Data(source.LeafHash([]byte("tx4")))
	assert.False(t, ok)
}

// TestReconcileAlternatingReplicas splits a tree across two reserved replicas
// by alternating ordinals, then merges both into a third
func TestReconcileAlternatingReplicas(t *testing.T) {
	tc := newTestContext(t)
	for n := 1; n <= 33; n++ {
		payloads := tc.RandomPayloads(n)
		source := newTestTree(t, payloads)

		even, odd := reserveFor(t, source), reserveFor(t, source)
		for ordinal := 0; ordinal < n; ordinal++ {
			replica := even
			if ordinal%2 == 1 {
				replica = odd
			}
			ok, err := Transfer(source, replica, uint64(ordinal))
			require.NoError(t, err)
			require.True(t, ok)
		}
		require.True(t, even.VerifyTree())
		require.True(t, odd.VerifyTree())

		merged := reserveFor(t, source)
		for ordinal := uint64(0); ordinal < uint64(n); ordinal++ {
			ok, err := Transfer(even, merged, ordinal)
			require.NoError(t, err)
			if !ok {
				ok, err = Transfer(odd, merged, ordinal)
				require.NoError(t, err)
			}
			require.True(t, ok, "n=%d, ordinal %d", n, ordinal)
		}

		require.True(t, merged.Complete())
		requirePacked(t, merged)
		requireProvable(t, merged)
		assert.Equal(t, source.Nodes(), merged.Nodes())

		for ordinal, want := range payloads {
			key, ok := merged.IthLeaf(uint64(ordinal))
			require.True(t, ok)
			got, ok := merged.Data(key)
			require.True(t, ok)
			require.Equal(t, want, got)
		}

		// a completed replica is an ordinary tree
		ok, err := merged.Push([]byte("pushed after reconciliation, longer than any random payload"))
		require.NoError(t, err)
		require.True(t, ok)
		requirePacked(t, merged)
	}
}

func TestTransferSingleLeaf(t *testing.T) {
	source := newTestTree(t, [][]byte{{}})
	replica := reserveFor(t, source)

	ok, err := Transfer(source, replica, 0)
	require.NoError(t, err)
	require.True(t, ok)

	data, ok := replica.Data(source.LeafHash([]byte{}))
	require.True(t, ok)
	assert.Empty(t, data)
	requirePacked(t, replica)
}
