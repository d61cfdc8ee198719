package packed

// Side says where a proof sibling goes when it is folded with the running
// value.
type Side uint8

const (
	// Left folds as NodeHash(sibling, acc). Recorded by left (odd) children,
	// whose sibling is the right child and so is hashed first.
	Left Side = iota
	// Right folds as NodeHash(acc, sibling). Recorded by right (even) children.
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "?"
}

// PathNode is one step of an inclusion proof
type PathNode struct {
	Side    Side
	Sibling Key
}

// Path is an inclusion proof, ordered from the leaf up to the root
type Path []PathNode

// Path returns the inclusion proof for the leaf key
//
// For the 5 leaf tree in doc.go, the path for the leaf at 8 is
//
//	[R:H(7), L:H(4), L:H(2)]
func (t *Tree) Path(key Key) (Path, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.pathAt(i)
}

// pathAt collects the siblings from i up to the root. It fails if any of them
// are unset, which can only happen for replicas that are not complete.
func (t *Tree) pathAt(i uint64) (Path, bool) {
	path := make(Path, 0, Depth(i))
	for i > 0 {
		s := t.nodes[Sibling(i)]
		if !s.set {
			return nil, false
		}
		path = append(path, PathNode{Side: SiblingSide(i), Sibling: s.key})
		i = Parent(i)
	}
	return path, true
}

// VerifyPath folds path starting from target and checks the result is the
// current root
func (t *Tree) VerifyPath(target Key, path Path) bool {
	root, ok := t.Root()
	if !ok {
		return false
	}
	return IncludedRoot(t.newHasher(), target, path) == root
}
