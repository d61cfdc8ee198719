package packed

import (
	"hash"

	"github.com/datatrails/go-datatrails-common/logger"
)

// Options configures a Tree. The values are private, use the With* functions.
type Options struct {
	newHasher func() hash.Hash
	log       logger.Logger
}

type Option func(*Options)

// WithHasher sets the H used for leaves and nodes. The hasher must produce
// KeyBytes sized sums.
func WithHasher(newHasher func() hash.Hash) Option {
	return func(o *Options) {
		o.newHasher = newHasher
	}
}

// WithLogger enables debug logging of tree mutations
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

func newOptions(opts ...Option) (Options, error) {
	options := Options{newHasher: DefaultHasher}
	for _, o := range opts {
		o(&options)
	}
	if options.newHasher().Size() != KeyBytes {
		return Options{}, ErrHashSize
	}
	return options, nil
}
