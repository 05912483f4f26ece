package setup

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bornholm/syscommerce/internal/config"
	"github.com/pkg/errors"

	_ "github.com/bornholm/syscommerce/internal/theme/storage/memory"
)

func TestNewHandlerFromConfig(t *testing.T) {
	conf := config.NewDefaultConfig()

	if err := config.Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf.Store.Path = config.InterpolatedString(filepath.Join(t.TempDir(), "data.db"))
	conf.Theme.Storage.Type = "memory"
	conf.Theme.Storage.Options = nil

	handler, err := NewHandlerFromConfig(t.Context(), conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	if e, g := `class="antialiased dark bg-slate-900"`, res.Body.String(); !strings.Contains(g, e) {
		t.Errorf("expected root markers '%s' on first visit, got:\n%s", e, g)
	}

	cookies := res.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a client session cookie")
	}

	withCookies := func(req *http.Request) *http.Request {
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return req
	}

	toggle := withCookies(httptest.NewRequest(http.MethodPost, "/navbar/theme", nil))
	toggle.Header.Set("Referer", "http://example.com/")

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, toggle)

	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, withCookies(httptest.NewRequest(http.MethodGet, "/", nil)))

	if e, g := `class="antialiased bg-gray-50"`, res.Body.String(); !strings.Contains(g, e) {
		t.Errorf("expected root markers '%s' after toggle, got:\n%s", e, g)
	}

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("pprof res.Code: expected '%v', got '%v'", e, g)
	}
}

func TestNewOAuth2ProvidersFromConfig(t *testing.T) {
	conf := config.NewDefaultConfig()
	conf.HTTP.BaseURL = "http://localhost:8080"

	gothProviders, uiProviders, err := newOAuth2ProvidersFromConfig(conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(gothProviders); e != g {
		t.Fatalf("len(gothProviders): expected '%v', got '%v'", e, g)
	}

	conf.Auth.Providers.Github.Key = "key"
	conf.Auth.Providers.Github.Secret = "secret"

	gothProviders, uiProviders, err = newOAuth2ProvidersFromConfig(conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(gothProviders); e != g {
		t.Fatalf("len(gothProviders): expected '%v', got '%v'", e, g)
	}

	if e, g := "github", uiProviders[0].ID; e != g {
		t.Errorf("uiProviders[0].ID: expected '%v', got '%v'", e, g)
	}

	if e, g := "Github", uiProviders[0].Label; e != g {
		t.Errorf("uiProviders[0].Label: expected '%v', got '%v'", e, g)
	}
}
