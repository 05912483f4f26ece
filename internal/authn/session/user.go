package session

import (
	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/store"
)

// User is a store user authenticated through a session token.
type User struct {
	*store.User
	token string
}

// SessionToken implements authn.SessionUser.
func (u *User) SessionToken() string {
	return u.token
}

var _ authn.SessionUser = &User{}
