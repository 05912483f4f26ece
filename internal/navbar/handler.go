package navbar

import (
	"html/template"
	"net/http"

	"github.com/bornholm/syscommerce/internal/ui"
	"github.com/pkg/errors"
)

// ClientIDFunc identifies the client issuing the request. issued reports
// whether the identifier was assigned by this very request.
type ClientIDFunc func(w http.ResponseWriter, r *http.Request) (clientID string, issued bool, err error)

type Handler struct {
	mux       *http.ServeMux
	registry  *Registry
	clientID  ClientIDFunc
	templates *template.Template
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(registry *Registry, clientID ClientIDFunc) (*Handler, error) {
	templates, err := ui.Templates(nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	h := &Handler{
		mux:       &http.ServeMux{},
		registry:  registry,
		clientID:  clientID,
		templates: templates,
	}

	h.mux.HandleFunc("GET /navbar", h.serveNavbar)
	h.mux.HandleFunc("POST /navbar/theme", h.handleToggleTheme)
	h.mux.HandleFunc("POST /navbar/drawer/{action}", h.handleDrawer)
	h.mux.HandleFunc("GET /navbar/go", h.handleGo)
	h.mux.HandleFunc("POST /navbar/logout", h.handleLogout)

	return h, nil
}

var _ http.Handler = &Handler{}
