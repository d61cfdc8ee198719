package replicas

import (
	"bytes"
	"fmt"

	"github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-packedmerkle/packed"
	"github.com/veraison/go-cose"
)

// DecodeSignedRoot decodes the TreeState from a signed message without
// verifying it. See ReserveFromSigned.
func DecodeSignedRoot(codec cbor.CBORCodec, msg []byte) (*cose.Sign1Message, TreeState, error) {
	var signed cose.Sign1Message
	if err := signed.UnmarshalCBOR(msg); err != nil {
		return nil, TreeState{}, err
	}

	var unverifiedState TreeState
	err := codec.UnmarshalInto(signed.Payload, &unverifiedState)
	if err != nil {
		return nil, TreeState{}, err
	}
	return &signed, unverifiedState, nil
}

// VerifySignedRoot decodes and verifies a signed tree state
func VerifySignedRoot(
	codec cbor.CBORCodec, verifier cose.Verifier, msg []byte, external []byte) (TreeState, error) {

	signed, state, err := DecodeSignedRoot(codec, msg)
	if err != nil {
		return TreeState{}, err
	}
	if err = signed.Verify(external, verifier); err != nil {
		return TreeState{}, err
	}
	return state, nil
}

// ReserveFromSigned verifies a signed tree state and reserves an empty replica
// for it. The replica can then be filled by a Replicator.
func ReserveFromSigned(
	codec cbor.CBORCodec, verifier cose.Verifier, msg []byte, external []byte, opts ...packed.Option,
) (*packed.Tree, TreeState, error) {

	state, err := VerifySignedRoot(codec, verifier, msg, external)
	if err != nil {
		return nil, TreeState{}, err
	}
	root, err := packed.KeyFromBytes(state.Root)
	if err != nil {
		return nil, TreeState{}, err
	}
	tree, err := packed.Reserve(root, state.Leaves, opts...)
	if err != nil {
		return nil, TreeState{}, err
	}
	return tree, state, nil
}

// CheckTreeState returns ErrRootMismatch unless tree has the root and leaf
// count recorded in state
func CheckTreeState(tree *packed.Tree, state TreeState) error {
	root, ok := tree.Root()
	if !ok {
		return fmt.Errorf("%w: the tree is empty", ErrRootMismatch)
	}
	if tree.Leaves() != state.Leaves {
		return fmt.Errorf("%w: %d leaves, the state has %d", ErrRootMismatch, tree.Leaves(), state.Leaves)
	}
	if !bytes.Equal(root[:], state.Root) {
		return fmt.Errorf("%w: root %s, the state has %x", ErrRootMismatch, root, state.Root)
	}
	return nil
}
