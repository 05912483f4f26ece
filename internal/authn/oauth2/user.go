package oauth2

import (
	"github.com/bornholm/syscommerce/internal/authz"
	"github.com/markbates/goth"
	"github.com/pkg/errors"
)

func newIdentity(gothUser goth.User) (authz.Identity, error) {
	identity := authz.Identity{
		Subject:  gothUser.UserID,
		Provider: gothUser.Provider,
		Email:    gothUser.Email,
	}

	if identity.Subject == "" {
		return authz.Identity{}, errors.New("user subject missing")
	}

	if identity.Provider == "" {
		return authz.Identity{}, errors.New("user provider missing")
	}

	if preferredUsername, ok := gothUser.RawData["preferred_username"].(string); ok && preferredUsername != "" {
		identity.Username = preferredUsername
		return identity, nil
	}

	for _, candidate := range []string{gothUser.NickName, gothUser.Name, gothUser.Email, gothUser.UserID} {
		if candidate != "" {
			identity.Username = candidate
			break
		}
	}

	return identity, nil
}
