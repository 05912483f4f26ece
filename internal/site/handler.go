package site

import (
	"html/template"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authn/oauth2"
	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/internal/ui"
	"github.com/pkg/errors"
)

type PageDataFunc func(w http.ResponseWriter, r *http.Request, pageTitle string) (ui.PageTemplateData, error)

type StartSessionFunc func(w http.ResponseWriter, r *http.Request, user *store.User) error

type Handler struct {
	mux          *http.ServeMux
	pageData     PageDataFunc
	users        *store.Store
	startSession StartSessionFunc
	providers    []oauth2.Provider
	templates    *template.Template
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(pageData PageDataFunc, users *store.Store, startSession StartSessionFunc, providers ...oauth2.Provider) (*Handler, error) {
	templates, err := ui.Templates(nil, templateFs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	h := &Handler{
		mux:          &http.ServeMux{},
		pageData:     pageData,
		users:        users,
		startSession: startSession,
		providers:    providers,
		templates:    templates,
	}

	h.mux.HandleFunc("GET /{$}", h.serveHome)
	h.mux.HandleFunc("GET /wishlist", h.serveWishlist)
	h.mux.HandleFunc("GET /login", h.serveLogin)
	h.mux.HandleFunc("POST /login", h.handleLogin)
	h.mux.HandleFunc("GET /register", h.serveRegister)
	h.mux.HandleFunc("POST /register", h.handleRegister)

	return h, nil
}

var _ http.Handler = &Handler{}
