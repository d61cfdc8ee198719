package replicas

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"hash"
	"testing"

	"github.com/forestrie/go-packedmerkle/packed"
	"github.com/forestrie/go-packedmerkle/treetesting"
	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"
)

func newTestContext(t *testing.T) treetesting.TestContext {
	return treetesting.NewTestContext(t, treetesting.TestConfig{
		Seed:            4321,
		TestLabelPrefix: "replicas",
	})
}

func newTestTree(t *testing.T, payloads [][]byte, opts ...packed.Option) *packed.Tree {
	tree, err := packed.FromLeaves(payloads, opts...)
	require.NoError(t, err)
	return tree
}

func reserveFor(t *testing.T, source *packed.Tree, opts ...packed.Option) *packed.Tree {
	t.Helper()
	root, ok := source.Root()
	require.True(t, ok)
	replica, err := packed.Reserve(root, source.Leaves(), opts...)
	require.NoError(t, err)
	return replica
}

func newTestCodec(t *testing.T) RootSigner {
	codec, err := NewRootSignerCodec()
	require.NoError(t, err)
	return NewRootSigner(codec)
}

func newTestSigner(t *testing.T) (cose.Signer, cose.Verifier) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	require.NoError(t, err)
	verifier, err := cose.NewVerifier(cose.AlgorithmES256, &key.PublicKey)
	require.NoError(t, err)
	return signer, verifier
}

// bundleFunc is a BundleSource for peers which misbehave
type bundleFunc func(ctx context.Context, ordinal uint64) (packed.DataBundle, bool, error)

func (f bundleFunc) GetBundle(ctx context.Context, ordinal uint64) (packed.DataBundle, bool, error) {
	return f(ctx, ordinal)
}

// xorHasher folds its input into 32 bytes with xor. It is linear, so anyone
// can forge a path for it, which is what the conflict tests need.
type xorHasher struct {
	buf []byte
}

func newXorHasher() hash.Hash { return &xorHasher{} }

func (h *xorHasher) Write(p []byte) (int, error) {
	h.buf = append(h.buf, p...)
	return len(p), nil
}

func (h *xorHasher) Sum(b []byte) []byte {
	var out [packed.KeyBytes]byte
	for i, c := range h.buf {
		out[i%packed.KeyBytes] ^= c
	}
	return append(b, out[:]...)
}

func (h *xorHasher) Reset()         { h.buf = h.buf[:0] }
func (h *xorHasher) Size() int      { return packed.KeyBytes }
func (h *xorHasher) BlockSize() int { return packed.KeyBytes }

func xorKeys(a, b packed.Key) packed.Key {
	var k packed.Key
	for i := range k {
		k[i] = a[i] ^ b[i]
	}
	return k
}
