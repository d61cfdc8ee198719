package packed

import "errors"

var (
	ErrInvalidKeyLength  = errors.New("key length is not KeyBytes")
	ErrHashSize          = errors.New("the hasher must produce KeyBytes sized digests")
	ErrReserveEmpty      = errors.New("a reserved tree must have at least one leaf")
	ErrReplicaIncomplete = errors.New("the tree has unset slots, complete it with bundles before mutating it")
	ErrSlotConflict      = errors.New("a verified bundle disagrees with a slot already set in the tree")
)
