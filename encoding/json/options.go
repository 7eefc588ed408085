package json

// Option configures Reader and Writer
type Option interface {
	apply(o *Options)
}

// Options holds codec settings
type Options struct {
	MismatchPolicy MismatchPolicy
	EscapeHTML     bool
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithMismatchPolicy sets reader mismatch policy
func WithMismatchPolicy(policy MismatchPolicy) Option {
	return optionFn(func(o *Options) { o.MismatchPolicy = policy })
}

// WithEscapeHTML escapes <, > and & in written strings
func WithEscapeHTML(enabled bool) Option {
	return optionFn(func(o *Options) { o.EscapeHTML = enabled })
}

func resolveOptions(opts []Option) Options {
	result := Options{MismatchPolicy: RejectMismatch}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	return result
}
