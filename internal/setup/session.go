package setup

import (
	"context"
	"crypto/rand"
	"net/http"
	"time"

	"github.com/bornholm/syscommerce/internal/authn/session"
	"github.com/bornholm/syscommerce/internal/config"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"
	"github.com/pkg/errors"
)

var NewSessionStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (sessions.Store, error) {
	keyPairs := make([][]byte, 0)
	if len(conf.HTTP.Session.Keys) == 0 {
		key, err := getRandomBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}

		keyPairs = append(keyPairs, key)
	} else {
		for _, k := range conf.HTTP.Session.Keys {
			keyPairs = append(keyPairs, []byte(k))
		}
	}

	sessionStore := sessions.NewCookieStore(keyPairs...)

	if conf.HTTP.Session.Cookie.MaxAge != nil {
		sessionStore.MaxAge(int(time.Duration(*conf.HTTP.Session.Cookie.MaxAge) / time.Second))
	}

	sessionStore.Options.Path = string(conf.HTTP.Session.Cookie.Path)
	sessionStore.Options.HttpOnly = bool(conf.HTTP.Session.Cookie.HTTPOnly)
	sessionStore.Options.Secure = bool(conf.HTTP.Session.Cookie.Secure)
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	gothic.Store = sessionStore

	return sessionStore, nil
})

var NewSessionManagerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*session.Manager, error) {
	sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	opts := []session.OptionFunc{}
	if conf.HTTP.Session.TTL != nil {
		opts = append(opts, session.WithTTL(time.Duration(*conf.HTTP.Session.TTL)))
	}

	return session.NewManager(sessionStore, users, opts...), nil
})

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != n {
		return nil, errors.Errorf("could not read %d bytes", n)
	}

	return data, nil
}
