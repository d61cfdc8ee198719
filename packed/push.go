package packed

// Push adds the leaf for data, returning false if it is already present.
//
// There are never any unpaired leaves in a packed tree, so the new leaf pairs
// with the first leaf, which sits at Parent(size):
//
//	before (k=3)        after (k=4)
//	     0                   0
//	   /   \               /   \
//	  1     2      =>     1     2
//	 / \                 / \   / \
//	3   4               3   4 5   6
//
// The leaf at 2 moves to 5, the new leaf goes to 6, and 2 becomes their parent.
// Only the ancestors of 2 are re-hashed.
func (t *Tree) Push(data []byte) (bool, error) {
	if !t.Complete() {
		return false, ErrReplicaIncomplete
	}

	hasher := t.newHasher()
	key := LeafHash(hasher, data)
	if _, ok := t.index[key]; ok {
		return false, nil
	}
	t.data[key] = append([]byte{}, data...)

	lim := t.Size()
	if lim == 0 {
		t.nodes = append(t.nodes, slot{key: key, set: true})
		t.index[key] = 0
		t.leaves = 1
		t.debugf("packed.Push: root leaf %s", key)
		return true, nil
	}

	p := Parent(lim)
	old := t.nodes[p].key
	t.nodes = append(t.nodes, slot{key: old, set: true}, slot{key: key, set: true})
	t.index[old] = lim
	t.index[key] = lim + 1

	t.propagate(hasher, p, NodeHash(hasher, key, old))
	t.leaves++

	t.debugf("packed.Push: leaf %s at %d, relocated %s from %d, leaves=%d", key, lim+1, old, p, t.leaves)
	return true, nil
}
