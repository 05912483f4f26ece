package cpanel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/authn/session"
	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

// serveIndex handles requests for the control panel
func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Get current authenticated user from context
	user, ok := contextStoreUser(ctx)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	page, err := h.pageData(w, r, "CPanel")
	if err != nil {
		slog.ErrorContext(ctx, "could not build page data", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := CPanelTemplateData{
		PageTemplateData: page,
		Profile:          NewUserTemplateData(user),
		IsAdmin:          user.Role == nav.RoleAdmin,
		Roles:            []nav.Role{nav.RoleUser, nav.RoleSeller, nav.RoleAdmin},
		ErrorMessage:     r.URL.Query().Get("error"),
	}

	h.fillDashboard(ctx, user, &data)

	// Render template
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "cpanel", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// fillDashboard loads the statistics, failures only degrade the dashboard
func (h *Handler) fillDashboard(ctx context.Context, user *store.User, data *CPanelTemplateData) {
	activeSessions, err := h.store.CountActiveSessions(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not count active sessions", log.Error(errors.WithStack(err)))
	} else {
		data.ActiveSessions = activeSessions
	}

	if !data.IsAdmin {
		return
	}

	// Count users using the CountUsers method
	userCount, err := h.store.CountUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not count users", log.Error(errors.WithStack(err)))
	} else {
		data.UserCount = userCount
	}

	users, err := h.store.ListUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list users", log.Error(errors.WithStack(err)))
		return
	}

	data.Users = make([]UserTemplateData, 0, len(users))
	for _, u := range users {
		data.Users = append(data.Users, NewUserTemplateData(u))
	}
}

func contextStoreUser(ctx context.Context) (*store.User, bool) {
	user, err := authn.ContextUser(ctx)
	if err != nil {
		return nil, false
	}

	switch u := user.(type) {
	case *session.User:
		return u.User, true
	case *store.User:
		return u, true
	default:
		return nil, false
	}
}
