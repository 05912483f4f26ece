package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestNavbarTemplate(t *testing.T) {
	tmpl, err := Templates(nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	type testCase struct {
		Data        NavbarTemplateData
		Contains    []string
		NotContains []string
	}

	testCases := []testCase{
		{
			Data: NavbarTemplateData{
				Brand:       Brand,
				DarkMode:    true,
				InlineLinks: []NavbarLink{{Label: "Home", URL: "/", Active: true}},
			},
			Contains:    []string{"SysCommerce", "Sign Up", "Login", `href="/register"`, "text-indigo-500 dark:text-indigo-400"},
			NotContains: []string{"Hello,", "navbar-drawer", "Logout"},
		},
		{
			Data: NavbarTemplateData{
				Brand:           Brand,
				Username:        "alice",
				IsAuthenticated: true,
				DrawerOpen:      true,
				DrawerLinks: []NavbarLink{
					{Label: "Home", URL: "/navbar/go?surface=drawer&to=%2F"},
					{Label: "Wishlist", URL: "/navbar/go?surface=drawer&to=wishlist"},
				},
			},
			Contains:    []string{"Hello, alice", "Logout", "navbar-drawer", "/navbar/drawer/dismiss", "Wishlist"},
			NotContains: []string{"Sign Up", "every 500ms"},
		},
		{
			Data: NavbarTemplateData{
				Brand:           Brand,
				Username:        "alice",
				IsAuthenticated: true,
				LoggingOut:      true,
			},
			Contains:    []string{"every 500ms", "animate-spin", "disabled"},
			NotContains: []string{"/navbar/logout"},
		},
	}

	for idx, tc := range testCases {
		var buff bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buff, "navbar", tc.Data); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		html := buff.String()

		for _, s := range tc.Contains {
			if !strings.Contains(html, s) {
				t.Errorf("Case #%d: expected '%s' in rendered navbar", idx, s)
			}
		}

		for _, s := range tc.NotContains {
			if strings.Contains(html, s) {
				t.Errorf("Case #%d: unexpected '%s' in rendered navbar", idx, s)
			}
		}
	}
}
