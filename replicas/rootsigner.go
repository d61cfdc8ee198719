package replicas

import (
	"crypto/rand"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-packedmerkle/packed"
	"github.com/veraison/go-cose"
)

// TreeState is what a source commits to when it publishes its tree. It is
// everything a peer needs to reserve a replica.
type TreeState struct {
	// Leaves fixes the shape of the tree, and so the meaning of every path
	Leaves uint64 `cbor:"1,keyasint"`
	Root   []byte `cbor:"2,keyasint"`
	// Timestamp is the unix time (milliseconds) read at the time the root was
	// signed. Including it allows for the same root to be re-signed.
	Timestamp int64 `cbor:"3,keyasint"`
}

// NewTreeState captures the current root and leaf count of tree
func NewTreeState(tree *packed.Tree, timestamp int64) (TreeState, error) {
	root, ok := tree.Root()
	if !ok {
		return TreeState{}, ErrEmptyTree
	}
	return TreeState{
		Leaves:    tree.Leaves(),
		Root:      root[:],
		Timestamp: timestamp,
	}, nil
}

// RootSigner produces COSE Sign1 signatures over tree states. Peers accept a
// signed state from a source they trust and reserve a replica from it.
type RootSigner struct {
	cborCodec dtcbor.CBORCodec
}

func NewRootSigner(cborCodec dtcbor.CBORCodec) RootSigner {
	return RootSigner{cborCodec: cborCodec}
}

// Sign1 signs the provided state. The root stays attached: a peer reserving a
// replica has nothing else to recover it from.
func (rs RootSigner) Sign1(coseSigner cose.Signer, keyIdentifier string, state TreeState, external []byte) ([]byte, error) {
	payload, err := rs.cborCodec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: coseSigner.Algorithm(),
				cose.HeaderLabelKeyID:     []byte(keyIdentifier),
			},
		},
		Payload: payload,
	}
	err = msg.Sign(rand.Reader, external, coseSigner)
	if err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}

// NewRootSignerCodec returns the deterministic codec used for signed states
// and bundles
func NewRootSignerCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}
