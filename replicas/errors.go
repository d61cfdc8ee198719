package replicas

import "errors"

var (
	ErrPeerInconsistent   = errors.New("a peer served a verified bundle which conflicts with the sink replica")
	ErrOrdinalsUnresolved = errors.New("no peer could supply a verifiable bundle for some ordinals")
	ErrRootMismatch       = errors.New("the tree does not match the signed tree state")
	ErrEmptyTree          = errors.New("an empty tree has no state to sign")
	ErrBundleMalformed    = errors.New("the encoded bundle is malformed")
	ErrSinkNotProvided    = errors.New("a sink replica was required but not provided")
)
