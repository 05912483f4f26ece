package expr

import (
	"context"
	"fmt"
	"testing"

	"github.com/bornholm/syscommerce/internal/authz"
	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/pkg/errors"
)

func TestRoleResolver(t *testing.T) {
	type testCase struct {
		Identity     authz.Identity
		ExpectedRole nav.Role
	}

	resolver := authz.NewRoleResolver(
		nav.RoleUser,
		authz.RoleRule{Role: nav.RoleAdmin, Rule: NewRule(`provider == "github" && username in ["octocat"]`)},
		authz.RoleRule{Role: nav.RoleSeller, Rule: NewRule(`domainOf(email) == "sellers.example.com"`)},
		authz.RoleRule{Role: nav.RoleAdmin, Rule: NewRule(`this is not valid`)},
	)

	testCases := []testCase{
		{
			Identity:     authz.Identity{Provider: "github", Username: "octocat"},
			ExpectedRole: nav.RoleAdmin,
		},
		{
			Identity:     authz.Identity{Provider: "google", Email: "jane@Sellers.example.com"},
			ExpectedRole: nav.RoleSeller,
		},
		{
			Identity:     authz.Identity{Provider: "local", Username: "alice", Email: "alice@example.com"},
			ExpectedRole: nav.RoleUser,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.ExpectedRole, resolver.Resolve(context.Background(), tc.Identity); e != g {
				t.Errorf("resolver.Resolve(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestRuleValidate(t *testing.T) {
	if err := NewRule(`email endsWith "@example.com"`).Validate(); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}

	if err := NewRule(`email endsWith`).Validate(); err == nil {
		t.Errorf("expected invalid rule to fail validation")
	}
}
