package session

import "time"

type Options struct {
	SessionName string
	TTL         time.Duration
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		SessionName: "syscommerce",
		TTL:         24 * time.Hour,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithSessionName(sessionName string) OptionFunc {
	return func(opts *Options) {
		opts.SessionName = sessionName
	}
}

func WithTTL(ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.TTL = ttl
	}
}
