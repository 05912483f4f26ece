package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bornholm/syscommerce/internal/authn/oauth2"
	"github.com/bornholm/syscommerce/internal/config"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/gitea"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/openidConnect"
	"github.com/pkg/errors"
)

var NewOAuth2HandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*oauth2.Handler, error) {
	// Configure sessions store, also used by gothic during the handshake
	if _, err := NewSessionStoreFromConfig(ctx, conf); err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessions, err := NewSessionManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	roles, err := NewRoleResolverFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	gothProviders, providers, err := newOAuth2ProvidersFromConfig(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	goth.UseProviders(gothProviders...)

	if len(providers) > 0 {
		slog.InfoContext(ctx, "oauth2 providers configured", slog.Int("count", len(providers)))
	}

	handler := oauth2.NewHandler(
		users,
		roles,
		sessions.Start,
		oauth2.WithProviders(providers...),
		oauth2.WithPrefix("/auth"),
	)

	return handler, nil
})

type oauth2ProviderFactory struct {
	name   string
	conf   config.OAuth2Provider
	label  string
	icon   string
	create func(key, secret, callbackURL string, scopes ...string) (goth.Provider, error)
}

func newOAuth2ProvidersFromConfig(conf *config.Config) ([]goth.Provider, []oauth2.Provider, error) {
	providers := conf.Auth.Providers

	factories := []oauth2ProviderFactory{
		{
			name:  "google",
			conf:  providers.Google,
			label: "Google",
			icon:  "fa-google",
			create: func(key, secret, callbackURL string, scopes ...string) (goth.Provider, error) {
				return google.New(key, secret, callbackURL, scopes...), nil
			},
		},
		{
			name:  "github",
			conf:  providers.Github,
			label: "Github",
			icon:  "fa-github",
			create: func(key, secret, callbackURL string, scopes ...string) (goth.Provider, error) {
				return github.New(key, secret, callbackURL, scopes...), nil
			},
		},
		{
			name:  "gitea",
			conf:  providers.Gitea.OAuth2Provider,
			label: string(providers.Gitea.Label),
			icon:  "fa-git-alt",
			create: func(key, secret, callbackURL string, scopes ...string) (goth.Provider, error) {
				return gitea.NewCustomisedURL(
					key, secret, callbackURL,
					string(providers.Gitea.AuthURL),
					string(providers.Gitea.TokenURL),
					string(providers.Gitea.ProfileURL),
					scopes...,
				), nil
			},
		},
		{
			name:  "openid-connect",
			conf:  providers.OIDC.OAuth2Provider,
			label: string(providers.OIDC.Label),
			icon:  string(providers.OIDC.Icon),
			create: func(key, secret, callbackURL string, scopes ...string) (goth.Provider, error) {
				provider, err := openidConnect.New(key, secret, callbackURL, string(providers.OIDC.DiscoveryURL), scopes...)
				if err != nil {
					return nil, errors.Wrap(err, "could not configure oidc provider")
				}

				return provider, nil
			},
		},
	}

	gothProviders := make([]goth.Provider, 0)
	uiProviders := make([]oauth2.Provider, 0)

	for _, f := range factories {
		if f.conf.Key == "" || f.conf.Secret == "" {
			continue
		}

		callbackURL := fmt.Sprintf("%s/auth/providers/%s/callback", conf.HTTP.BaseURL, f.name)

		provider, err := f.create(string(f.conf.Key), string(f.conf.Secret), callbackURL, f.conf.Scopes...)
		if err != nil {
			return nil, nil, errors.WithStack(err)
		}

		gothProviders = append(gothProviders, provider)
		uiProviders = append(uiProviders, oauth2.Provider{
			ID:    provider.Name(),
			Label: f.label,
			Icon:  f.icon,
		})
	}

	return gothProviders, uiProviders, nil
}
