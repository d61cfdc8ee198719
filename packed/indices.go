package packed

import "math/bits"

// Index arithmetic for the implicit layout. As with the rest of the low level
// helpers, there is a burden of knowledge on the caller: Parent(0) and
// Sibling(0) are meaningless and are not checked.

// Parent returns the parent index of a non root node
func Parent(i uint64) uint64 {
	return (i - 1) / 2
}

// LeftChild returns the index of the left (odd) child of i
func LeftChild(i uint64) uint64 {
	return 2*i + 1
}

// RightChild returns the index of the right (even) child of i
func RightChild(i uint64) uint64 {
	return 2*i + 2
}

// Sibling returns the other child of Parent(i)
func Sibling(i uint64) uint64 {
	if i%2 == 0 {
		return i - 1
	}
	return i + 1
}

// SiblingSide returns the Side the sibling of i takes when the parent of i is
// derived. A left child (odd index) has its sibling hashed first.
func SiblingSide(i uint64) Side {
	if i%2 == 0 {
		return Right
	}
	return Left
}

// TreeSize returns the number of nodes in a packed tree with the given number
// of leaves
func TreeSize(leaves uint64) uint64 {
	if leaves == 0 {
		return 0
	}
	return 2*leaves - 1
}

// FirstLeaf returns the index of the leaf with ordinal 0
func FirstLeaf(leaves uint64) uint64 {
	return TreeSize(leaves) - leaves
}

// Depth returns the number of edges between node i and the root. This is also
// the length of the inclusion path for i.
func Depth(i uint64) int {
	return bits.Len64(i+1) - 1
}
