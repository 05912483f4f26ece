package session

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const (
	valueClientID = "client"
	valueToken    = "token"
)

type contextKey string

const contextKeySession contextKey = "webSession"

// Manager binds the browser cookie session to the server side
// authentication sessions.
type Manager struct {
	sessionStore sessions.Store
	sessionName  string
	users        *store.Store
	ttl          time.Duration
}

// ClientID returns the identifier of the browser issuing the request,
// assigning a new one on first visit. issued reports whether the identifier
// was assigned by this request, i.e. the browser did not present one.
func (m *Manager) ClientID(w http.ResponseWriter, r *http.Request) (clientID string, issued bool, err error) {
	sess, err := m.session(r)
	if err != nil {
		return "", false, errors.WithStack(err)
	}

	if existing, ok := sess.Values[valueClientID].(string); ok && existing != "" {
		return existing, false, nil
	}

	clientID = xid.New().String()
	sess.Values[valueClientID] = clientID

	if err := sess.Save(r, w); err != nil {
		return "", false, errors.WithStack(err)
	}

	return clientID, true, nil
}

// ClientKey identifies the client for throttling purposes without assigning
// an identifier: browsers without one are keyed by their remote address.
func (m *Manager) ClientKey(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := m.session(r)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if clientID, ok := sess.Values[valueClientID].(string); ok && clientID != "" {
		return clientID, nil
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "addr:" + host, nil
}

// Start opens an authentication session for the given user.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, user *store.User) error {
	ctx := r.Context()

	authSession, err := m.users.CreateSession(ctx, user.ID, m.ttl)
	if err != nil {
		return errors.WithStack(err)
	}

	sess, err := m.session(r)
	if err != nil {
		return errors.WithStack(err)
	}

	sess.Values[valueToken] = authSession.Token

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	slog.InfoContext(ctx, "user signed in", slog.String("username", user.Username), slog.String("provider", user.Provider))

	return nil
}

// Logout revokes the authentication session referenced by the context.
func (m *Manager) Logout(ctx context.Context) error {
	token, ok := authn.ContextSessionToken(ctx)
	if !ok {
		return errors.WithStack(authn.ErrNoUser)
	}

	if err := m.users.RevokeSession(ctx, token); err != nil {
		return errors.WithStack(err)
	}

	slog.InfoContext(ctx, "user signed out")

	return nil
}

func (m *Manager) Authenticator() authn.Authenticator {
	return authn.AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (authn.User, error) {
		ctx := r.Context()

		sess, err := m.session(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		token, ok := sess.Values[valueToken].(string)
		if !ok || token == "" {
			return nil, nil
		}

		_, user, err := m.users.FindSession(ctx, token)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, errors.WithStack(err)
			}

			delete(sess.Values, valueToken)

			if err := sess.Save(r, w); err != nil {
				slog.WarnContext(ctx, "could not clear revoked session token", log.Error(errors.WithStack(err)))
			}

			return nil, nil
		}

		return &User{User: user, token: token}, nil
	})
}

// Middleware loads the cookie session once per request so that every
// reader and writer down the chain shares the same values.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.load(r)
		if err != nil {
			slog.ErrorContext(r.Context(), "could not load session", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeySession, sess)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) session(r *http.Request) (*sessions.Session, error) {
	if sess, ok := r.Context().Value(contextKeySession).(*sessions.Session); ok {
		return sess, nil
	}

	return m.load(r)
}

func (m *Manager) load(r *http.Request) (*sessions.Session, error) {
	sess, err := m.sessionStore.Get(r, m.sessionName)
	if err != nil {
		if sess == nil {
			return nil, errors.WithStack(err)
		}

		// Undecodable cookies (e.g. rotated keys) yield a fresh session
		slog.DebugContext(r.Context(), "could not decode session cookie", log.Error(errors.WithStack(err)))
	}

	return sess, nil
}

func NewManager(sessionStore sessions.Store, users *store.Store, funcs ...OptionFunc) *Manager {
	opts := NewOptions(funcs...)

	return &Manager{
		sessionStore: sessionStore,
		sessionName:  opts.SessionName,
		users:        users,
		ttl:          opts.TTL,
	}
}
