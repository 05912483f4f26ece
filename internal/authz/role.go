package authz

import (
	"context"
	"log/slog"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/pkg/errors"
)

type Rule interface {
	Exec(env map[string]any) (bool, error)
	String() string
}

// Identity is what role rules are evaluated against.
type Identity struct {
	Provider string
	Subject  string
	Username string
	Email    string
}

func (i Identity) env() map[string]any {
	return map[string]any{
		"provider": i.Provider,
		"subject":  i.Subject,
		"username": i.Username,
		"email":    i.Email,
	}
}

type RoleRule struct {
	Role nav.Role
	Rule Rule
}

// RoleResolver assigns a role to an identity: the first matching rule wins,
// the default role applies otherwise.
type RoleResolver struct {
	rules       []RoleRule
	defaultRole nav.Role
}

func (r *RoleResolver) Resolve(ctx context.Context, identity Identity) nav.Role {
	if role, matched := r.Match(ctx, identity); matched {
		return role
	}

	return r.defaultRole
}

// Match returns the role of the first matching rule, if any.
func (r *RoleResolver) Match(ctx context.Context, identity Identity) (nav.Role, bool) {
	for _, rr := range r.rules {
		matched, err := rr.Rule.Exec(identity.env())
		if err != nil {
			slog.ErrorContext(ctx, "could not evaluate role rule", log.Error(errors.WithStack(err)), slog.String("rule", rr.Rule.String()), slog.String("role", string(rr.Role)))
			continue
		}

		if matched {
			return rr.Role, true
		}
	}

	return "", false
}

func NewRoleResolver(defaultRole nav.Role, rules ...RoleRule) *RoleResolver {
	return &RoleResolver{
		rules:       rules,
		defaultRole: defaultRole,
	}
}
