package bindly

import "github.com/viant/tagly/format/text"

const defaultTagName = "bind"

//Option member derivation option
type Option func(o *options)

//Options represents derivation options
type Options []Option

type options struct {
	tagName    string
	caseFormat text.CaseFormat
}

//Apply applies options
func (o Options) Apply(opts *options) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(opts)
	}
}

func newOptions(opts []Option) *options {
	ret := &options{tagName: defaultTagName}
	Options(opts).Apply(ret)
	if ret.tagName == "" {
		ret.tagName = defaultTagName
	}
	return ret
}

//WithTagName sets struct tag name used for member names, "bind" by default
func WithTagName(name string) Option {
	return func(o *options) {
		o.tagName = name
	}
}

//WithCaseFormat formats untagged Go field names with supplied case format
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *options) {
		o.caseFormat = caseFormat
	}
}
