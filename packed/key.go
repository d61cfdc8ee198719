package packed

import (
	"encoding/hex"
	"fmt"
)

// KeyBytes is the width of every key in a tree. Hashers must produce exactly
// this many bytes.
const KeyBytes = 32

// Key identifies a leaf (the double hash of its payload) or an interior node.
type Key [KeyBytes]byte

// KeyFromBytes copies b into a Key
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeyBytes {
		return k, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(b))
	}
	copy(k[:], b)
	return k, nil
}

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

func (k Key) MarshalText() ([]byte, error) {
	buf := make([]byte, hex.EncodedLen(KeyBytes))
	hex.Encode(buf, k[:])
	return buf, nil
}

func (k *Key) UnmarshalText(text []byte) error {
	if len(text) != hex.EncodedLen(KeyBytes) {
		return fmt.Errorf("%w: got %d hex digits", ErrInvalidKeyLength, len(text))
	}
	_, err := hex.Decode(k[:], text)
	return err
}
