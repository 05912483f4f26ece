package navbar

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) serveNavbar(w http.ResponseWriter, r *http.Request) {
	component, ok := h.mountOrFail(w, r)
	if !ok {
		return
	}

	h.renderPartial(w, r, component)
}

func (h *Handler) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	component, ok := h.mountOrFail(w, r)
	if !ok {
		return
	}

	ctx := r.Context()

	mode := component.Theme().Toggle(ctx)

	slog.DebugContext(ctx, "theme toggled", slog.String("mode", mode.String()))

	// The root markers live outside of the navbar partial
	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, backPath(r), http.StatusSeeOther)
}

func (h *Handler) handleDrawer(w http.ResponseWriter, r *http.Request) {
	component, ok := h.mountOrFail(w, r)
	if !ok {
		return
	}

	drawer := component.Drawer()

	switch r.PathValue("action") {
	case "open":
		drawer.Open()
	case "close":
		drawer.Close()
	case "dismiss":
		drawer.Dismiss()
	default:
		http.NotFound(w, r)
		return
	}

	h.respond(w, r, component)
}

// handleGo activates a navigation link on the given surface then navigates
// to its target.
func (h *Handler) handleGo(w http.ResponseWriter, r *http.Request) {
	component, ok := h.mountOrFail(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	surface := nav.ParseSurface(query.Get("surface"))

	inline, drawer := component.Links(authn.ContextAuthState(r.Context()), "")

	links := inline
	if surface == nav.SurfaceDrawer {
		links = drawer
	}

	link, exists := nav.FindLink(links, query.Get("to"))
	if !exists {
		http.NotFound(w, r)
		return
	}

	link.Activate()

	http.Redirect(w, r, link.Path(), http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	component, ok := h.mountOrFail(w, r)
	if !ok {
		return
	}

	ctx := r.Context()

	done := component.Logout().Trigger(ctx, authn.ContextAuthState(ctx))
	if done == nil {
		slog.DebugContext(ctx, "logout ignored")
		h.respond(w, r, component)
		return
	}

	if isHTMX(r) {
		h.renderPartial(w, r, component)
		return
	}

	// Without htmx the page cannot poll, wait for the logout to settle
	select {
	case <-done:
	case <-ctx.Done():
		return
	}

	http.Redirect(w, r, nav.TargetHome, http.StatusSeeOther)
}

func (h *Handler) mountOrFail(w http.ResponseWriter, r *http.Request) (*Component, bool) {
	component, err := h.mount(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not mount navbar", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}

	return component, true
}
