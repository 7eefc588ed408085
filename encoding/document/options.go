package document

import "github.com/viant/bindly/visitor"

// Option configures Reader
type Option func(o *Options)

// Options holds reader settings
type Options struct {
	MismatchPolicy visitor.MismatchPolicy
}

// WithMismatchPolicy sets reader mismatch policy
func WithMismatchPolicy(policy visitor.MismatchPolicy) Option {
	return func(o *Options) { o.MismatchPolicy = policy }
}

func resolveOptions(opts []Option) Options {
	result := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&result)
		}
	}
	return result
}
