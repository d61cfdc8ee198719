package packed

import "fmt"

// DataBundle carries everything a replica needs to verify and absorb a single
// leaf without trusting the sender.
type DataBundle struct {
	Path Path
	Data []byte
}

// QueryBundle returns the payload and inclusion path for the leaf with the
// given ordinal, if this tree holds its payload. The payload is copied.
func (t *Tree) QueryBundle(ordinal uint64) (DataBundle, bool) {
	key, ok := t.IthLeaf(ordinal)
	if !ok {
		return DataBundle{}, false
	}
	data, ok := t.data[key]
	if !ok {
		return DataBundle{}, false
	}
	path, ok := t.pathAt(FirstLeaf(t.leaves) + ordinal)
	if !ok {
		return DataBundle{}, false
	}
	return DataBundle{Path: path, Data: append([]byte{}, data...)}, true
}

type slotWrite struct {
	index uint64
	key   Key
}

// InsertBundle verifies b against the local root and absorbs it.
//
// It returns false, with a nil error, if the path does not reproduce the local
// root or does not address a leaf slot of this tree. It returns
// ErrSlotConflict if the bundle verifies but disagrees with a slot which is
// already set. The tree is unchanged in both cases.
//
// On success the leaf, the sibling of every step and every ancestor are set,
// and the payload is stored.
func (t *Tree) InsertBundle(b DataBundle) (bool, error) {
	root, ok := t.Root()
	if !ok {
		return false, nil
	}

	hasher := t.newHasher()
	leaf := LeafHash(hasher, b.Data)

	// values[j] is the value of the node the j'th proof step is folded into
	values := make([]Key, len(b.Path)+1)
	values[0] = leaf
	for j, node := range b.Path {
		values[j+1] = fold(hasher, values[j], node)
	}
	if values[len(b.Path)] != root {
		t.debugf("packed.InsertBundle: path for %s does not reproduce root %s", leaf, root)
		return false, nil
	}

	pos, ok := t.bundlePosition(b.Path)
	if !ok {
		t.debugf("packed.InsertBundle: path for %s does not address a leaf of a %d leaf tree", leaf, t.leaves)
		return false, nil
	}

	writes := make([]slotWrite, 0, 2*len(b.Path))
	i := pos
	for j, node := range b.Path {
		writes = append(writes, slotWrite{index: i, key: values[j]}, slotWrite{index: Sibling(i), key: node.Sibling})
		i = Parent(i)
	}
	if len(writes) == 0 {
		// single leaf tree, the leaf is the root
		writes = append(writes, slotWrite{index: 0, key: leaf})
	}

	// check everything before changing anything
	first := FirstLeaf(t.leaves)
	for _, w := range writes {
		if s := t.nodes[w.index]; s.set && s.key != w.key {
			return false, fmt.Errorf(
				"%w: slot %d holds %s, the bundle for %s requires %s", ErrSlotConflict, w.index, s.key, leaf, w.key)
		}
		if w.index < first {
			continue
		}
		if at, ok := t.index[w.key]; ok && at != w.index {
			return false, fmt.Errorf(
				"%w: leaf %s is at %d, the bundle for %s places it at %d", ErrSlotConflict, w.key, at, leaf, w.index)
		}
	}

	for _, w := range writes {
		t.setNode(w.index, w.key)
		if w.index >= first {
			t.index[w.key] = w.index
		}
	}
	if _, ok := t.data[leaf]; !ok {
		t.data[leaf] = append([]byte{}, b.Data...)
	}

	t.debugf("packed.InsertBundle: leaf %s at %d, unset=%d", leaf, pos, t.unset)
	return true, nil
}

// bundlePosition walks path from the root down to find the leaf it proves.
// Each Side names the position of the sibling in the concatenation, so a Left
// step was taken from a left child.
func (t *Tree) bundlePosition(path Path) (uint64, bool) {
	n := t.Size()
	i := uint64(0)
	for j := len(path) - 1; j >= 0; j-- {
		switch path[j].Side {
		case Left:
			i = LeftChild(i)
		case Right:
			i = RightChild(i)
		default:
			return 0, false
		}
		if i >= n {
			return 0, false
		}
	}
	if i < FirstLeaf(t.leaves) {
		return 0, false
	}
	return i, true
}

// Transfer copies the leaf with the given ordinal from source to target. It
// returns false if source does not hold the leaf or the target does not
// accept the bundle.
func Transfer(source, target *Tree, ordinal uint64) (bool, error) {
	b, ok := source.QueryBundle(ordinal)
	if !ok {
		return false, nil
	}
	return target.InsertBundle(b)
}
