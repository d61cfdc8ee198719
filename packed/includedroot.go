package packed

import "hash"

// IncludedRoot calculates the root committing target, given its inclusion
// path. Interior nodes and leaves are handled identically.
func IncludedRoot(hasher hash.Hash, target Key, path Path) Key {
	root := target
	for _, node := range path {
		root = fold(hasher, root, node)
	}
	return root
}

// fold derives the parent of acc from one proof step
func fold(hasher hash.Hash, acc Key, node PathNode) Key {
	if node.Side == Left {
		return NodeHash(hasher, node.Sibling, acc)
	}
	return NodeHash(hasher, acc, node.Sibling)
}
