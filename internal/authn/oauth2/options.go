package oauth2

type Options struct {
	Providers         []Provider
	Prefix            string
	PostLoginRedirect string
	ErrorRedirect     string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Providers:         make([]Provider, 0),
		Prefix:            "",
		PostLoginRedirect: "/",
		ErrorRedirect:     "/login",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithProviders(providers ...Provider) OptionFunc {
	return func(opts *Options) {
		opts.Providers = providers
	}
}

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithPostLoginRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.PostLoginRedirect = path
	}
}

func WithErrorRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.ErrorRedirect = path
	}
}
