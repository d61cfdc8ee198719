package packed

// Reserve creates a placeholder replica for a tree known only by its root and
// leaf count. Every slot other than the root is unset until it is filled by
// InsertBundle.
func Reserve(root Key, leaves uint64, opts ...Option) (*Tree, error) {
	if leaves == 0 {
		return nil, ErrReserveEmpty
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	t := newTree(options)
	t.leaves = leaves
	t.nodes = make([]slot, TreeSize(leaves))
	t.unset = uint64(len(t.nodes))
	t.setNode(0, root)

	t.debugf("packed.Reserve: root=%s, leaves=%d", root, leaves)
	return t, nil
}
