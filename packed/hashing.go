package packed

import (
	"hash"

	"github.com/minio/sha256-simd"
)

// DefaultHasher is the H used when no WithHasher option is supplied
func DefaultHasher() hash.Hash {
	return sha256.New()
}

// LeafHash returns H(H(data))
// ** the hasher is reset **
func LeafHash(hasher hash.Hash, data []byte) Key {
	hasher.Reset()
	hasher.Write(data)
	return rehash(hasher)
}

// NodeHash returns H(H(a || b))
// ** the hasher is reset **
//
// Parents are always derived as NodeHash(right, left), see doc.go
func NodeHash(hasher hash.Hash, a Key, b Key) Key {
	hasher.Reset()
	hasher.Write(a[:])
	hasher.Write(b[:])
	return rehash(hasher)
}

// rehash finalises the current hasher state and hashes the result once more
func rehash(hasher hash.Hash) Key {
	var inner [KeyBytes]byte
	first := hasher.Sum(inner[:0])

	hasher.Reset()
	hasher.Write(first)

	var k Key
	hasher.Sum(k[:0])
	return k
}
