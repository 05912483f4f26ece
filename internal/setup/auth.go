package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/syscommerce/internal/authn"
	"github.com/bornholm/syscommerce/internal/authz"
	"github.com/bornholm/syscommerce/internal/authz/expr"
	"github.com/bornholm/syscommerce/internal/config"
	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

func NewRoleResolverFromConfig(ctx context.Context, conf *config.Config) (*authz.RoleResolver, error) {
	defaultRole := nav.Role(conf.Auth.DefaultRole)
	if !defaultRole.Valid() {
		return nil, errors.Errorf("invalid default role '%s'", defaultRole)
	}

	rules := make([]authz.RoleRule, 0, len(conf.Auth.Roles))
	for _, r := range conf.Auth.Roles {
		role := nav.Role(r.Role)
		if !role.Valid() {
			return nil, errors.Errorf("invalid role '%s'", role)
		}

		rule := expr.NewRule(string(r.Rule))
		if err := rule.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid rule for role '%s'", role)
		}

		rules = append(rules, authz.RoleRule{Role: role, Rule: rule})
	}

	return authz.NewRoleResolver(defaultRole, rules...), nil
}

// onAuthenticated attaches the role of the user to the request logs.
func onAuthenticated(r *http.Request, user authn.User) (*http.Request, error) {
	auth := user.AuthState()
	if auth == nil {
		return nil, errors.Errorf("user '%s' has no authentication state", user.UserSubject())
	}

	ctx := log.WithAttrs(r.Context(), slog.String("role", string(auth.Role)))

	return r.WithContext(ctx), nil
}
