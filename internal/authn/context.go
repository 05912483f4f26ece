package authn

import (
	"context"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/pkg/errors"
)

type contextKey string

const (
	contextKeyUser         contextKey = "authnUser"
	contextKeySessionToken contextKey = "authnSessionToken"
)

var ErrNoUser = errors.New("no user in context")

func ContextUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(contextKeyUser).(User)
	if !ok {
		return nil, errors.WithStack(ErrNoUser)
	}

	return user, nil
}

// ContextAuthState returns the navigation view of the authenticated user, or
// nil for anonymous visitors.
func ContextAuthState(ctx context.Context) *nav.AuthState {
	user, err := ContextUser(ctx)
	if err != nil {
		return nil
	}

	return user.AuthState()
}

func WithContextUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

func ContextSessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(contextKeySessionToken).(string)
	return token, ok && token != ""
}

func WithContextSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKeySessionToken, token)
}
