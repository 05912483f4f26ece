package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/config"
	"github.com/bornholm/syscommerce/internal/cpanel"
	"github.com/bornholm/syscommerce/internal/pprof"
	"github.com/bornholm/syscommerce/internal/ratelimit"
	"github.com/bornholm/syscommerce/internal/site"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	users, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessions, err := NewSessionManagerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	oauth2Handler, err := NewOAuth2HandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	navbarHandler, err := NewNavbarHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	siteHandler, err := site.NewHandler(navbarHandler.PageData, users, sessions.Start, oauth2Handler.Providers()...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cpanelHandler, err := cpanel.NewHandler("/cpanel", users, navbarHandler.PageData)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rateLimiter := ratelimit.New(rate.Limit(conf.HTTP.RateLimit.Rate), int(conf.HTTP.RateLimit.Burst))
	rateLimiterMiddleware := rateLimiter.Middleware(sessions.ClientKey)

	mux.Handle("/auth/", oauth2Handler)
	mux.Handle("/navbar", navbarHandler)
	mux.Handle("/navbar/", rateLimiterMiddleware(navbarHandler))
	mux.Handle("/cpanel", cpanelHandler)
	mux.Handle("/cpanel/", cpanelHandler)

	if conf.HTTP.Pprof.Enabled {
		slog.WarnContext(ctx, "profiling endpoints enabled", slog.String("prefix", "/debug/pprof"))
		mux.Handle("/debug/pprof/", pprof.NewHandler("/debug/pprof"))
	}

	mux.Handle("/", siteHandler)

	auth := authn.Chain(
		authn.WithAuthenticators(
			sessions.Authenticator(),
		),
		authn.WithAnonymous(true),
		authn.WithOnAuthenticated(onAuthenticated),
	)

	return sessions.Middleware(auth(slogMiddleware(mux))), nil
}
