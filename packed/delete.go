package packed

import "fmt"

// Delete removes the leaf key, returning false if it is not present.
//
// The last two slots always hold a pair of leaves whose parent is
//
//	q = Parent(size-1)
//
// Those two leaves are taken off the end of the slice and used to patch the
// hole left by the deleted leaf i. With p = Parent(i), there are three cases:
//
//  1. k is odd and i is the first leaf. The sibling of i is q itself, so the
//     popped pair takes the places of q and i, and p inherits the old value of
//     q.
//  2. i is one of the popped pair. Its sibling moves up into p, which becomes
//     a leaf.
//  3. Otherwise the sibling of i moves up into the slot of q (which becomes a
//     leaf), and the popped pair replace i and its sibling below p. p takes
//     over the old value of q. Both q and p need re-hashing up to the root.
func (t *Tree) Delete(key Key) (bool, error) {
	if !t.Complete() {
		return false, ErrReplicaIncomplete
	}

	i, ok := t.index[key]
	if !ok {
		return false, nil
	}

	n := t.Size()
	k := t.leaves

	if i == 0 {
		t.nodes = t.nodes[:0]
		t.leaves = 0
		t.forget(key)
		t.debugf("packed.Delete: last leaf %s", key)
		return true, nil
	}

	hasher := t.newHasher()
	p := Parent(i)
	neighbour := t.nodes[Sibling(i)].key
	farthestRight := t.nodes[n-1].key
	farthestLeft := t.nodes[n-2].key
	t.nodes = t.nodes[:n-2]

	switch {
	case k%2 == 1 && i == n-k:
		// neighbour is the old value of q, which is the parent of the popped pair
		t.nodes[i] = slot{key: farthestRight, set: true}
		t.nodes[i-1] = slot{key: farthestLeft, set: true}
		t.index[farthestRight] = i
		t.index[farthestLeft] = i - 1

		t.propagate(hasher, p, neighbour)

	case i == n-1 || i == n-2:
		if !(key == farthestRight && neighbour == farthestLeft) &&
			!(key == farthestLeft && neighbour == farthestRight) {
			panic(fmt.Sprintf("packed.Delete: the farthest pair at %d does not contain %s", n-2, key))
		}
		t.index[neighbour] = p

		t.propagate(hasher, p, neighbour)

	default:
		q := Parent(n - 1)

		t.nodes[RightChild(p)] = slot{key: farthestRight, set: true}
		t.nodes[LeftChild(p)] = slot{key: farthestLeft, set: true}
		t.index[farthestRight] = RightChild(p)
		t.index[farthestLeft] = LeftChild(p)

		farthestParent := t.nodes[q].key
		t.nodes[p] = slot{key: farthestParent, set: true}
		t.index[neighbour] = q

		t.propagate(hasher, q, neighbour)
		t.propagate(hasher, p, farthestParent)
	}

	t.leaves--
	t.forget(key)

	t.debugf("packed.Delete: leaf %s from %d, leaves=%d", key, i, t.leaves)
	return true, nil
}

func (t *Tree) forget(key Key) {
	delete(t.index, key)
	delete(t.data, key)
}
