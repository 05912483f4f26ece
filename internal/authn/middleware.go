package authn

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

type Authenticator interface {
	Authenticate(w http.ResponseWriter, r *http.Request) (User, error)
}

type AuthenticateFunc func(w http.ResponseWriter, r *http.Request) (User, error)

func (fn AuthenticateFunc) Authenticate(w http.ResponseWriter, r *http.Request) (User, error) {
	return fn(w, r)
}

// Chain tries each authenticator in order. The first one returning a user
// wins; a nil user passes the request to the next one.
func Chain(funcs ...MiddlewareOptionFunc) func(http.Handler) http.Handler {
	opts := NewMiddlewareOptions(funcs...)
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(w, r, opts.Authenticators)
			if err != nil {
				opts.OnError(w, r, errors.WithStack(err))
				return
			}

			if user == nil {
				if !opts.AllowAnonymous {
					opts.UnauthorizedHandler.ServeHTTP(w, r)
					return
				}

				ctx := log.WithAttrs(r.Context(), slog.Bool("anonymous", true))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			r = r.WithContext(withAuthenticatedUser(r.Context(), user))

			rr, err := opts.OnAuthenticated(r, user)
			if err != nil {
				opts.OnError(w, r, errors.WithStack(err))
				return
			}

			next.ServeHTTP(w, rr)
		}

		return http.HandlerFunc(fn)
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, authenticators []Authenticator) (User, error) {
	for _, auth := range authenticators {
		user, err := auth.Authenticate(w, r)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if user != nil {
			return user, nil
		}
	}

	return nil, nil
}

func withAuthenticatedUser(ctx context.Context, user User) context.Context {
	ctx = WithContextUser(ctx, user)

	if sessionUser, ok := user.(SessionUser); ok {
		ctx = WithContextSessionToken(ctx, sessionUser.SessionToken())
	}

	return log.WithAttrs(ctx, slog.String("user", fmt.Sprintf("%s@%s", user.UserSubject(), user.UserProvider())))
}

type OnAuthenticatedFunc func(r *http.Request, user User) (*http.Request, error)
type OnErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

type MiddlewareOptions struct {
	UnauthorizedHandler http.Handler
	Authenticators      []Authenticator
	OnAuthenticated     OnAuthenticatedFunc
	OnError             OnErrorFunc
	AllowAnonymous      bool
}

type MiddlewareOptionFunc func(opts *MiddlewareOptions)

func NewMiddlewareOptions(funcs ...MiddlewareOptionFunc) *MiddlewareOptions {
	opts := &MiddlewareOptions{
		OnAuthenticated: func(r *http.Request, user User) (*http.Request, error) {
			return r, nil
		},
		UnauthorizedHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		}),
		OnError: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.ErrorContext(r.Context(), "authentication error", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithAuthenticators(authenticators ...Authenticator) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.Authenticators = authenticators
	}
}

func WithUnauthorizedHandler(h http.Handler) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.UnauthorizedHandler = h
	}
}

func WithOnAuthenticated(fn OnAuthenticatedFunc) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.OnAuthenticated = fn
	}
}

// WithAnonymous lets requests without any authenticated user through.
func WithAnonymous(allow bool) MiddlewareOptionFunc {
	return func(opts *MiddlewareOptions) {
		opts.AllowAnonymous = allow
	}
}
