package cpanel

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

// handleUpdateRole lets administrators change the role of a user
func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := contextStoreUser(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if user.Role != nav.RoleAdmin {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	role := nav.Role(r.PostFormValue("role"))
	if !role.Valid() {
		h.redirectWithError(w, r, fmt.Sprintf("Invalid role '%s'.", role))
		return
	}

	// Administrators cannot demote themselves
	if userID == user.ID && role != nav.RoleAdmin {
		h.redirectWithError(w, r, "You cannot change your own role.")
		return
	}

	if err := h.store.UpdateUserRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		slog.ErrorContext(ctx, "could not update user role", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "user role updated", slog.Int64("userID", userID), slog.String("role", string(role)))

	http.Redirect(w, r, h.prefix, http.StatusSeeOther)
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	query := url.Values{}
	query.Set("error", message)

	http.Redirect(w, r, h.prefix+"?"+query.Encode(), http.StatusSeeOther)
}
