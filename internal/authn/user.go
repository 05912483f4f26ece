package authn

import "github.com/bornholm/syscommerce/internal/nav"

type User interface {
	UserSubject() string
	UserProvider() string
	AuthState() *nav.AuthState
}

// SessionUser is implemented by users authenticated through a revocable
// session.
type SessionUser interface {
	User
	SessionToken() string
}
