package packed

import (
	"hash"

	"github.com/datatrails/go-datatrails-common/logger"
)

// slot is a single tree position. A reserved replica starts with every slot
// unset except the root.
type slot struct {
	key Key
	set bool
}

// Tree is a packed merkle tree together with its leaf position index and the
// payloads it knows about.
//
// A Tree has a single mutator. Push, Delete and InsertBundle must be
// serialised by the caller. The read only methods may run concurrently with
// each other.
type Tree struct {
	nodes  []slot
	leaves uint64
	unset  uint64

	index map[Key]uint64
	data  map[Key][]byte

	newHasher func() hash.Hash
	log       logger.Logger
}

func newTree(options Options) *Tree {
	return &Tree{
		index:     make(map[Key]uint64),
		data:      make(map[Key][]byte),
		newHasher: options.newHasher,
		log:       options.log,
	}
}

// New creates an empty tree
func New(opts ...Option) (*Tree, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newTree(options), nil
}

// Root returns the root key. It is not available for an empty tree.
func (t *Tree) Root() (Key, bool) {
	if len(t.nodes) == 0 {
		return Key{}, false
	}
	return t.nodes[0].key, t.nodes[0].set
}

// Leaves returns the number of leaves, known or not
func (t *Tree) Leaves() uint64 { return t.leaves }

// Size returns the total number of nodes, always 0 or 2*Leaves()-1
func (t *Tree) Size() uint64 { return uint64(len(t.nodes)) }

// Complete is true when every slot is set. Only complete trees can be mutated
// with Push or Delete.
func (t *Tree) Complete() bool { return t.unset == 0 }

// Node returns the key at index i
func (t *Tree) Node(i uint64) (Key, bool) {
	if i >= t.Size() {
		return Key{}, false
	}
	return t.nodes[i].key, t.nodes[i].set
}

// Nodes returns a copy of the node array. Unset slots are nil.
func (t *Tree) Nodes() []*Key {
	nodes := make([]*Key, len(t.nodes))
	for i := range t.nodes {
		if !t.nodes[i].set {
			continue
		}
		k := t.nodes[i].key
		nodes[i] = &k
	}
	return nodes
}

// Position returns the current index of a leaf
func (t *Tree) Position(key Key) (uint64, bool) {
	i, ok := t.index[key]
	return i, ok
}

// Data returns a copy of the payload for key, if it is known locally
func (t *Tree) Data(key Key) ([]byte, bool) {
	d, ok := t.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte{}, d...), true
}

// HasData is true if the payload for key is held locally
func (t *Tree) HasData(key Key) bool {
	_, ok := t.data[key]
	return ok
}

// Payloads returns a copy of every locally known payload
func (t *Tree) Payloads() map[Key][]byte {
	payloads := make(map[Key][]byte, len(t.data))
	for k, d := range t.data {
		payloads[k] = append([]byte{}, d...)
	}
	return payloads
}

// IthLeaf returns the key of the leaf with the given ordinal. Ordinal 0 is
// the first of the trailing leaf slots.
func (t *Tree) IthLeaf(ordinal uint64) (Key, bool) {
	if ordinal >= t.leaves {
		return Key{}, false
	}
	return t.Node(FirstLeaf(t.leaves) + ordinal)
}

// LeafHash hashes data with the hasher configured for this tree
func (t *Tree) LeafHash(data []byte) Key {
	return LeafHash(t.newHasher(), data)
}

func (t *Tree) setNode(i uint64, k Key) {
	if !t.nodes[i].set {
		t.unset--
	}
	t.nodes[i] = slot{key: k, set: true}
}

func (t *Tree) debugf(format string, args ...any) {
	if t.log == nil {
		return
	}
	t.log.Debugf(format, args...)
}
