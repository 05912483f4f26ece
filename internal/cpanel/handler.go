package cpanel

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/internal/ui"
	"github.com/pkg/errors"
)

type PageDataFunc func(w http.ResponseWriter, r *http.Request, pageTitle string) (ui.PageTemplateData, error)

type Handler struct {
	prefix    string
	store     *store.Store
	pageData  PageDataFunc
	templates *template.Template
	mux       *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, store *store.Store, pageData PageDataFunc) (*Handler, error) {
	templates, err := ui.Templates(nil, templateFs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	handler := &Handler{
		prefix:    prefix,
		store:     store,
		pageData:  pageData,
		templates: templates,
		mux:       &http.ServeMux{},
	}

	// Register routes
	handler.mux.HandleFunc(fmt.Sprintf("GET %s", prefix), handler.serveIndex)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/users/{id}/role", prefix), handler.handleUpdateRole)

	return handler, nil
}

var _ http.Handler = &Handler{}
