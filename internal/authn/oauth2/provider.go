package oauth2

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authz"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/markbates/goth/gothic"
	"github.com/pkg/errors"
)

func (h *Handler) handleProvider(w http.ResponseWriter, r *http.Request) {
	gothic.BeginAuthHandler(w, r)
}

func (h *Handler) handleProviderCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not complete user auth", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, h.errorRedirect, http.StatusSeeOther)
		return
	}

	// The provider session is only needed during the handshake
	if err := gothic.Logout(w, r); err != nil {
		slog.WarnContext(ctx, "could not clear provider session", log.Error(errors.WithStack(err)))
	}

	identity, err := newIdentity(gothUser)
	if err != nil {
		slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, h.errorRedirect, http.StatusSeeOther)
		return
	}

	slog.DebugContext(ctx, "authenticated user", slog.String("provider", identity.Provider), slog.String("username", identity.Username))

	if err := h.signIn(w, r, identity); err != nil {
		slog.ErrorContext(ctx, "could not sign in user", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, h.errorRedirect, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, h.postLoginRedirect, http.StatusSeeOther)
}

// signIn creates the user on first sign in, refreshes its profile and opens
// a session. Role rules matching the identity override the stored role.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, identity authz.Identity) error {
	ctx := r.Context()

	user, err := h.users.FindOrCreateUser(ctx, identity.Subject, identity.Provider, h.roles.Resolve(ctx, identity))
	if err != nil {
		return errors.WithStack(err)
	}

	user.Username = identity.Username
	user.Email = identity.Email

	if role, matched := h.roles.Match(ctx, identity); matched {
		user.Role = role
	}

	if err := h.users.UpdateUserProfile(ctx, user); err != nil {
		return errors.WithStack(err)
	}

	if err := h.startSession(w, r, user); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
