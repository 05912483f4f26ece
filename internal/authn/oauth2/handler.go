package oauth2

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authz"
	"github.com/bornholm/syscommerce/internal/store"
)

type Provider struct {
	ID    string
	Label string
	Icon  string
}

type StartSessionFunc func(w http.ResponseWriter, r *http.Request, user *store.User) error

type Handler struct {
	mux               *http.ServeMux
	users             *store.Store
	roles             *authz.RoleResolver
	startSession      StartSessionFunc
	providers         []Provider
	prefix            string
	postLoginRedirect string
	errorRedirect     string
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) Providers() []Provider {
	return h.providers
}

func NewHandler(users *store.Store, roles *authz.RoleResolver, startSession StartSessionFunc, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:               http.NewServeMux(),
		users:             users,
		roles:             roles,
		startSession:      startSession,
		providers:         opts.Providers,
		prefix:            opts.Prefix,
		postLoginRedirect: opts.PostLoginRedirect,
		errorRedirect:     opts.ErrorRedirect,
	}

	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}", h.prefix), withContextProvider(http.HandlerFunc(h.handleProvider)))
	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}/callback", h.prefix), withContextProvider(http.HandlerFunc(h.handleProviderCallback)))

	return h
}

var _ http.Handler = &Handler{}

func withContextProvider(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		provider := r.PathValue("provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))
		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
