package site

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authn/oauth2"
	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/ui"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

type HomeTemplateData struct {
	ui.PageTemplateData
}

type WishlistTemplateData struct {
	ui.PageTemplateData
}

type LoginTemplateData struct {
	ui.PageTemplateData
	Username     string
	ErrorMessage string
	Providers    []oauth2.Provider
}

type RegisterTemplateData struct {
	ui.PageTemplateData
	Username     string
	Email        string
	Role         nav.Role
	Roles        []nav.Role
	ErrorMessage string
}

// registrableRoles are the roles visitors may pick when signing up.
var registrableRoles = []nav.Role{nav.RoleUser, nav.RoleSeller}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)), slog.String("template", name))
	}
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, title string) (ui.PageTemplateData, bool) {
	data, err := h.pageData(w, r, title)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not build page data", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return ui.PageTemplateData{}, false
	}

	return data, true
}
