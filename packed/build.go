package packed

// FromLeaves builds a tree over the distinct payloads in a single bottom up
// pass.
//
// Payloads are de-duplicated by key, the first occurrence wins. The leaf with
// ordinal j holds the j'th distinct payload in input order.
//
// Children are visited from the last index down. The first child to reach an
// empty parent slot (always the right child) is parked there, the second
// resolves it:
//
//	tree[p] = NodeHash(tree[2p+2], tree[2p+1])
func FromLeaves(payloads [][]byte, opts ...Option) (*Tree, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	t := newTree(options)
	hasher := t.newHasher()

	var keys []Key
	for _, d := range payloads {
		k := LeafHash(hasher, d)
		if _, ok := t.data[k]; ok {
			continue
		}
		t.data[k] = append([]byte{}, d...)
		keys = append(keys, k)
	}

	t.leaves = uint64(len(keys))
	size := TreeSize(t.leaves)
	t.nodes = make([]slot, size)
	if size == 0 {
		return t, nil
	}

	first := FirstLeaf(t.leaves)
	for j, k := range keys {
		i := first + uint64(j)
		t.nodes[i] = slot{key: k, set: true}
		t.index[k] = i
	}

	for i := size - 1; i > 0; i-- {
		child := t.nodes[i].key
		p := &t.nodes[Parent(i)]
		if !p.set {
			p.key = child
			p.set = true
			continue
		}
		p.key = NodeHash(hasher, p.key, child)
	}

	t.debugf("packed.FromLeaves: leaves=%d, size=%d, root=%s", t.leaves, size, t.nodes[0].key)
	return t, nil
}
