package site

import (
	"net/http"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/nav"
)

func (h *Handler) serveHome(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r, "Home")
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, "home", HomeTemplateData{PageTemplateData: page})
}

func (h *Handler) serveWishlist(w http.ResponseWriter, r *http.Request) {
	auth := authn.ContextAuthState(r.Context())
	if auth == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if auth.Role != nav.RoleUser {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	page, ok := h.page(w, r, "Wishlist")
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, "wishlist", WishlistTemplateData{PageTemplateData: page})
}
