package replicas

import (
	"context"

	"github.com/forestrie/go-packedmerkle/packed"
	lru "github.com/hashicorp/golang-lru/v2"
)

// BundleSource is anything a Replicator can ask for bundles. ok is false when
// the source does not hold the payload for the ordinal.
type BundleSource interface {
	GetBundle(ctx context.Context, ordinal uint64) (packed.DataBundle, bool, error)
}

// TreeSource serves bundles straight from a local tree
type TreeSource struct {
	Tree *packed.Tree
}

func (s TreeSource) GetBundle(ctx context.Context, ordinal uint64) (packed.DataBundle, bool, error) {
	b, ok := s.Tree.QueryBundle(ordinal)
	return b, ok, nil
}

type bundleCacheKey struct {
	root    packed.Key
	ordinal uint64
}

// CachingSource serves bundles from a local tree, remembering them by root
// and ordinal. A root fixes the whole tree, so an entry can never go stale: a
// mutation changes the root and so the key.
//
// The tree must not be mutated while GetBundle is running.
type CachingSource struct {
	tree  *packed.Tree
	cache *lru.Cache[bundleCacheKey, packed.DataBundle]
}

func NewCachingSource(tree *packed.Tree, size int) (*CachingSource, error) {
	cache, err := lru.New[bundleCacheKey, packed.DataBundle](size)
	if err != nil {
		return nil, err
	}
	return &CachingSource{tree: tree, cache: cache}, nil
}

func (s *CachingSource) GetBundle(ctx context.Context, ordinal uint64) (packed.DataBundle, bool, error) {
	root, ok := s.tree.Root()
	if !ok {
		return packed.DataBundle{}, false, nil
	}
	key := bundleCacheKey{root: root, ordinal: ordinal}
	if b, ok := s.cache.Get(key); ok {
		bundleCacheHits.Inc()
		return copyBundle(b), true, nil
	}
	bundleCacheMisses.Inc()

	b, ok := s.tree.QueryBundle(ordinal)
	if !ok {
		return packed.DataBundle{}, false, nil
	}
	s.cache.Add(key, b)
	return copyBundle(b), true, nil
}

// Len returns the number of cached bundles
func (s *CachingSource) Len() int { return s.cache.Len() }

func copyBundle(b packed.DataBundle) packed.DataBundle {
	return packed.DataBundle{
		Path: append(packed.Path{}, b.Path...),
		Data: append([]byte{}, b.Data...),
	}
}
