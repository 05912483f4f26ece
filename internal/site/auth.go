package site

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) serveLogin(w http.ResponseWriter, r *http.Request) {
	if authn.ContextAuthState(r.Context()) != nil {
		http.Redirect(w, r, nav.TargetHome, http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, "", "")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))

	user, err := h.users.Authenticate(ctx, username, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, store.ErrUnauthenticated) {
			slog.InfoContext(ctx, "invalid credentials", slog.String("username", username))
			h.renderLogin(w, r, http.StatusUnauthorized, username, "Invalid username or password.")
			return
		}

		slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.signIn(w, r, user)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, username string, message string) {
	page, ok := h.page(w, r, "Login")
	if !ok {
		return
	}

	h.render(w, r, status, "login", LoginTemplateData{
		PageTemplateData: page,
		Username:         username,
		ErrorMessage:     message,
		Providers:        h.providers,
	})
}

func (h *Handler) serveRegister(w http.ResponseWriter, r *http.Request) {
	if authn.ContextAuthState(r.Context()) != nil {
		http.Redirect(w, r, nav.TargetHome, http.StatusSeeOther)
		return
	}

	h.renderRegister(w, r, http.StatusOK, RegisterTemplateData{Role: nav.RoleUser})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := RegisterTemplateData{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Role:     nav.Role(r.PostFormValue("role")),
	}

	if !slices.Contains(registrableRoles, form.Role) {
		form.Role = nav.RoleUser
		form.ErrorMessage = "Please choose an account type."
		h.renderRegister(w, r, http.StatusBadRequest, form)
		return
	}

	if r.PostFormValue("password") != r.PostFormValue("confirmation") {
		form.ErrorMessage = "Passwords do not match."
		h.renderRegister(w, r, http.StatusBadRequest, form)
		return
	}

	user, err := h.users.RegisterUser(ctx, form.Username, form.Email, r.PostFormValue("password"), form.Role)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			form.ErrorMessage = "This username is already taken."
			h.renderRegister(w, r, http.StatusConflict, form)
			return
		}

		slog.WarnContext(ctx, "could not register user", log.Error(errors.WithStack(err)))
		form.ErrorMessage = "Username is required and passwords must be at least 8 characters long."
		h.renderRegister(w, r, http.StatusBadRequest, form)
		return
	}

	slog.InfoContext(ctx, "user registered", slog.String("username", user.Username), slog.String("role", string(user.Role)))

	h.signIn(w, r, user)
}

func (h *Handler) renderRegister(w http.ResponseWriter, r *http.Request, status int, form RegisterTemplateData) {
	page, ok := h.page(w, r, "Sign Up")
	if !ok {
		return
	}

	form.PageTemplateData = page
	form.Roles = registrableRoles

	h.render(w, r, status, "register", form)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, user *store.User) {
	if err := h.startSession(w, r, user); err != nil {
		slog.ErrorContext(r.Context(), "could not start session", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, nav.TargetHome, http.StatusSeeOther)
}
