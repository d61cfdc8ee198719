package packed

// VerifyTree re-derives every interior node from its children and compares
// it with the stored value. Slots that are not yet set (in a reserved replica)
// are skipped, so a partial replica verifies as long as everything it does
// hold is consistent.
func (t *Tree) VerifyTree() bool {
	n := t.Size()
	if n <= 1 {
		return true
	}

	hasher := t.newHasher()
	for i := uint64(0); RightChild(i) < n; i++ {
		node, left, right := t.nodes[i], t.nodes[LeftChild(i)], t.nodes[RightChild(i)]
		if !node.set || !left.set || !right.set {
			continue
		}
		if NodeHash(hasher, right.key, left.key) != node.key {
			t.debugf("packed.VerifyTree: node %d does not commit to its children", i)
			return false
		}
	}
	return true
}
