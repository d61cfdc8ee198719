package packed

import "hash"

// propagate writes value at from and re-derives every ancestor up to and
// including the root. Push and Delete both go through here, and it folds in
// exactly the same way as IncludedRoot.
func (t *Tree) propagate(hasher hash.Hash, from uint64, value Key) {
	i := from
	for i > 0 {
		t.setNode(i, value)
		s := Sibling(i)
		value = fold(hasher, value, PathNode{Side: SiblingSide(i), Sibling: t.nodes[s].key})
		i = Parent(i)
	}
	t.setNode(0, value)
}
