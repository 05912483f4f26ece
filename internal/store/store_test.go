package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "store.db"))

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("could not close store: %+v", errors.WithStack(err))
		}
	})

	if err := store.HealthCheck(t.Context()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return store
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	registered, err := store.RegisterUser(ctx, "alice", "alice@example.com", "correct-horse", nav.RoleUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := nav.RoleUser, registered.Role; e != g {
		t.Errorf("registered.Role: expected '%v', got '%v'", e, g)
	}

	if _, err := store.RegisterUser(ctx, "alice", "", "another-password", nav.RoleSeller); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("store.RegisterUser(): expected ErrAlreadyExists, got '%+v'", err)
	}

	if _, err := store.Authenticate(ctx, "alice", "wrong-password"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("store.Authenticate(): expected ErrUnauthenticated, got '%+v'", err)
	}

	if _, err := store.Authenticate(ctx, "nobody", "correct-horse"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("store.Authenticate(): expected ErrUnauthenticated, got '%+v'", err)
	}

	authenticated, err := store.Authenticate(ctx, "alice", "correct-horse")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := registered.ID, authenticated.ID; e != g {
		t.Errorf("authenticated.ID: expected '%v', got '%v'", e, g)
	}

	if e, g := (nav.AuthState{UserName: "alice", Role: nav.RoleUser}), *authenticated.AuthState(); e != g {
		t.Errorf("authenticated.AuthState(): expected '%v', got '%v'", e, g)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	if _, err := store.RegisterUser(ctx, "  ", "", "correct-horse", nav.RoleUser); err == nil {
		t.Errorf("store.RegisterUser(): expected error on empty username")
	}

	if _, err := store.RegisterUser(ctx, "bob", "", "short", nav.RoleUser); err == nil {
		t.Errorf("store.RegisterUser(): expected error on short password")
	}
}

func TestFindOrCreateUser(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	created, err := store.FindOrCreateUser(ctx, "1234", "github", nav.RoleSeller)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	created.Username = "octocat"
	created.Email = "octocat@example.com"

	if err := store.UpdateUserProfile(ctx, created); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found, err := store.FindOrCreateUser(ctx, "1234", "github", nav.RoleUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := created.ID, found.ID; e != g {
		t.Errorf("found.ID: expected '%v', got '%v'", e, g)
	}

	if e, g := nav.RoleSeller, found.Role; e != g {
		t.Errorf("found.Role: expected '%v', got '%v'", e, g)
	}

	if e, g := "octocat", found.Username; e != g {
		t.Errorf("found.Username: expected '%v', got '%v'", e, g)
	}

	if _, err := store.GetUser(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("store.GetUser(): expected ErrNotFound, got '%+v'", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	user, err := store.RegisterUser(ctx, "carol", "", "correct-horse", nav.RoleAdmin)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	session, err := store.CreateSession(ctx, user.ID, time.Hour)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found, sessionUser, err := store.FindSession(ctx, session.Token)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := session.Token, found.Token; e != g {
		t.Errorf("found.Token: expected '%v', got '%v'", e, g)
	}

	if e, g := "carol", sessionUser.Username; e != g {
		t.Errorf("sessionUser.Username: expected '%v', got '%v'", e, g)
	}

	if err := store.RevokeSession(ctx, session.Token); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, _, err := store.FindSession(ctx, session.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("store.FindSession(): expected ErrNotFound, got '%+v'", err)
	}

	if err := store.RevokeSession(ctx, session.Token); err != nil {
		t.Errorf("store.RevokeSession(): expected no error on unknown session, got '%+v'", err)
	}
}

func TestExpiredSession(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	user, err := store.RegisterUser(ctx, "dave", "", "correct-horse", nav.RoleUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	session, err := store.CreateSession(ctx, user.ID, -time.Minute)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, _, err := store.FindSession(ctx, session.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("store.FindSession(): expected ErrNotFound, got '%+v'", err)
	}

	purged, err := store.PurgeExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, purged; e != g {
		t.Errorf("purged: expected '%v', got '%v'", e, g)
	}
}

func TestUserAdministration(t *testing.T) {
	ctx := t.Context()
	store := newTestStore(t)

	alice, err := store.RegisterUser(ctx, "alice", "alice@example.com", "correct-horse", nav.RoleUser)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.RegisterUser(ctx, "bob", "bob@example.com", "battery-staple", nav.RoleSeller); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), count; e != g {
		t.Errorf("count: expected '%v', got '%v'", e, g)
	}

	if err := store.UpdateUserRole(ctx, alice.ID, nav.RoleAdmin); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.UpdateUserRole(ctx, alice.ID, nav.Role("root")); err == nil {
		t.Errorf("store.UpdateUserRole(): expected an error for an invalid role")
	}

	if err := store.UpdateUserRole(ctx, 9999, nav.RoleUser); !errors.Is(err, ErrNotFound) {
		t.Errorf("store.UpdateUserRole(): expected ErrNotFound, got '%+v'", err)
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(users); e != g {
		t.Fatalf("len(users): expected '%v', got '%v'", e, g)
	}

	if e, g := nav.RoleAdmin, users[0].Role; e != g {
		t.Errorf("users[0].Role: expected '%v', got '%v'", e, g)
	}

	if _, err := store.CreateSession(ctx, alice.ID, time.Hour); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.CreateSession(ctx, alice.ID, -time.Hour); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	active, err := store.CountActiveSessions(ctx, alice.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), active; e != g {
		t.Errorf("active: expected '%v', got '%v'", e, g)
	}
}
