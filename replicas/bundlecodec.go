package replicas

import (
	"context"
	"fmt"

	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-packedmerkle/packed"
)

// bundleRecord is the wire form of a packed.DataBundle. Sides and Siblings
// are parallel, leaf end first.
type bundleRecord struct {
	Sides    []byte   `cbor:"1,keyasint"`
	Siblings [][]byte `cbor:"2,keyasint"`
	Data     []byte   `cbor:"3,keyasint"`
}

// EncodeBundle encodes a bundle for transfer to a peer
func EncodeBundle(codec commoncbor.CBORCodec, b packed.DataBundle) ([]byte, error) {
	rec := bundleRecord{
		Sides:    make([]byte, len(b.Path)),
		Siblings: make([][]byte, len(b.Path)),
		Data:     b.Data,
	}
	for i, node := range b.Path {
		rec.Sides[i] = byte(node.Side)
		rec.Siblings[i] = append([]byte{}, node.Sibling[:]...)
	}
	return codec.MarshalCBOR(rec)
}

// DecodeBundle decodes a bundle produced by EncodeBundle. The result is not
// verified, that is the job of packed.Tree InsertBundle.
func DecodeBundle(codec commoncbor.CBORCodec, data []byte) (packed.DataBundle, error) {
	var rec bundleRecord
	if err := codec.UnmarshalInto(data, &rec); err != nil {
		return packed.DataBundle{}, fmt.Errorf("%w: %v", ErrBundleMalformed, err)
	}
	if len(rec.Sides) != len(rec.Siblings) {
		return packed.DataBundle{}, fmt.Errorf(
			"%w: %d sides for %d siblings", ErrBundleMalformed, len(rec.Sides), len(rec.Siblings))
	}

	b := packed.DataBundle{
		Path: make(packed.Path, len(rec.Sides)),
		Data: rec.Data,
	}
	if b.Data == nil {
		b.Data = []byte{}
	}
	for i := range rec.Sides {
		side := packed.Side(rec.Sides[i])
		if side != packed.Left && side != packed.Right {
			return packed.DataBundle{}, fmt.Errorf("%w: side %d at step %d", ErrBundleMalformed, side, i)
		}
		sibling, err := packed.KeyFromBytes(rec.Siblings[i])
		if err != nil {
			return packed.DataBundle{}, fmt.Errorf("%w: sibling at step %d: %v", ErrBundleMalformed, i, err)
		}
		b.Path[i] = packed.PathNode{Side: side, Sibling: sibling}
	}
	return b, nil
}

// ServeBundle answers a peer request for an ordinal with the encoded bundle.
// ok is false when tree can not produce the bundle.
func ServeBundle(codec commoncbor.CBORCodec, tree *packed.Tree, ordinal uint64) ([]byte, bool, error) {
	b, ok := tree.QueryBundle(ordinal)
	if !ok {
		return nil, false, nil
	}
	data, err := EncodeBundle(codec, b)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// BundleFetcher retrieves an encoded bundle from a remote peer, typically one
// answering with ServeBundle
type BundleFetcher func(ctx context.Context, ordinal uint64) ([]byte, bool, error)

// CodecSource adapts a BundleFetcher to a BundleSource
type CodecSource struct {
	Codec commoncbor.CBORCodec
	Fetch BundleFetcher
}

func (s CodecSource) GetBundle(ctx context.Context, ordinal uint64) (packed.DataBundle, bool, error) {
	data, ok, err := s.Fetch(ctx, ordinal)
	if err != nil || !ok {
		return packed.DataBundle{}, false, err
	}
	b, err := DecodeBundle(s.Codec, data)
	if err != nil {
		return packed.DataBundle{}, false, err
	}
	return b, true, nil
}
