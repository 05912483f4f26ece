package navbar

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/theme"
	"github.com/bornholm/syscommerce/internal/ui"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

// PageData returns the layout data of a page served at the request path.
func (h *Handler) PageData(w http.ResponseWriter, r *http.Request, pageTitle string) (ui.PageTemplateData, error) {
	component, err := h.mount(w, r)
	if err != nil {
		return ui.PageTemplateData{}, errors.WithStack(err)
	}

	return ui.PageTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: pageTitle,
			RootClass: component.RootClass(),
		},
		NavbarTemplateData: navbarData(r, component, r.URL.Path),
	}, nil
}

func (h *Handler) mount(w http.ResponseWriter, r *http.Request) (*Component, error) {
	clientID, issued, err := h.clientID(w, r)
	if err != nil {
		return nil, errors.Wrap(err, "could not identify client")
	}

	if issued {
		return h.registry.Transient(r.Context(), clientID), nil
	}

	return h.registry.Mount(r.Context(), clientID), nil
}

func navbarData(r *http.Request, component *Component, currentPath string) ui.NavbarTemplateData {
	auth := authn.ContextAuthState(r.Context())

	inline, drawer := component.Links(auth, currentPath)

	data := ui.NavbarTemplateData{
		Brand:       ui.Brand,
		DarkMode:    component.Theme().Mode() == theme.Dark,
		InlineLinks: make([]ui.NavbarLink, 0, len(inline)),
		DrawerLinks: make([]ui.NavbarLink, 0, len(drawer)),
		DrawerOpen:  component.Drawer().IsOpen(),
	}

	for _, l := range inline {
		data.InlineLinks = append(data.InlineLinks, ui.NavbarLink{
			Label:  l.Label,
			URL:    l.Path(),
			Active: l.Active,
		})
	}

	// Drawer links go through the activation endpoint so that the drawer
	// closes before navigating.
	for _, l := range drawer {
		data.DrawerLinks = append(data.DrawerLinks, ui.NavbarLink{
			Label:  l.Label,
			URL:    goURL(l),
			Active: l.Active,
		})
	}

	if auth != nil {
		data.IsAuthenticated = true
		data.Username = auth.UserName
		data.LoggingOut = component.Logout().InFlight()
	}

	return data
}

func goURL(l nav.Link) string {
	query := url.Values{}
	query.Set("to", l.Target)
	query.Set("surface", string(l.Surface))

	return "/navbar/go?" + query.Encode()
}

// respond re-renders the navbar partial for htmx requests and redirects
// other requests back to the page they were issued from.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, component *Component) {
	if !isHTMX(r) {
		http.Redirect(w, r, backPath(r), http.StatusSeeOther)
		return
	}

	h.renderPartial(w, r, component)
}

func (h *Handler) renderPartial(w http.ResponseWriter, r *http.Request, component *Component) {
	ctx := r.Context()

	data := navbarData(r, component, currentPath(r))

	// The page content still reflects the signed in user once the logout settled
	if r.URL.Query().Get("pending") == "logout" && !data.LoggingOut {
		w.Header().Set("HX-Refresh", "true")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, "navbar", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// currentPath returns the path of the page displaying the navbar.
func currentPath(r *http.Request) string {
	for _, raw := range []string{r.Header.Get("HX-Current-URL"), r.Referer()} {
		if raw == "" {
			continue
		}

		u, err := url.Parse(raw)
		if err != nil || u.Path == "" {
			continue
		}

		return u.Path
	}

	return nav.TargetHome
}

// backPath returns the path of a same-host referer, the home page otherwise.
func backPath(r *http.Request) string {
	raw := r.Referer()
	if raw == "" {
		return nav.TargetHome
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return nav.TargetHome
	}

	// Browsers read "/\host" like "//host".
	if u.Path == "" || u.Path[0] != '/' || strings.HasPrefix(u.Path[1:], "/") || strings.Contains(u.Path, "\\") {
		return nav.TargetHome
	}

	return u.Path
}
