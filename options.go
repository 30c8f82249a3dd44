package compactvec

type options struct {
	trustedInput bool
}

// Option configures decoding behaviour.
type Option func(*options)

// WithTrustedInput skips the post-decode check that the bit store holds
// exactly Len()*Width() bits.
//
// Only use this for bytes this package produced itself. Structural checks
// (truncation, word counts, width range) are always performed.
func WithTrustedInput() Option {
	return func(o *options) {
		o.trustedInput = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
