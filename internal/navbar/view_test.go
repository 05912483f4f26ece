package navbar

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bornholm/syscommerce/internal/theme/storage/memory"
)

func TestBackPath(t *testing.T) {
	type testCase struct {
		Referer      string
		ExpectedPath string
	}

	testCases := []testCase{
		{Referer: "", ExpectedPath: "/"},
		{Referer: "http://localhost/cpanel", ExpectedPath: "/cpanel"},
		{Referer: "http://localhost/wishlist?page=2", ExpectedPath: "/wishlist"},
		{Referer: "/cpanel", ExpectedPath: "/cpanel"},
		{Referer: "http://localhost", ExpectedPath: "/"},
		{Referer: "http://evil.example/cpanel", ExpectedPath: "/"},
		{Referer: "http://evil.example/%5Cevil.example/phish", ExpectedPath: "/"},
		{Referer: "http://localhost/%5Cevil.example/phish", ExpectedPath: "/"},
		{Referer: "http://localhost//evil.example/phish", ExpectedPath: "/"},
		{Referer: "//evil.example/phish", ExpectedPath: "/"},
		{Referer: "cpanel", ExpectedPath: "/"},
		{Referer: "http://localhost/%zz", ExpectedPath: "/"},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/navbar/theme", nil)
			r.Host = "localhost"

			if tc.Referer != "" {
				r.Header.Set("Referer", tc.Referer)
			}

			if e, g := tc.ExpectedPath, backPath(r); e != g {
				t.Errorf("backPath(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestCrossSiteRefererRedirectsHome(t *testing.T) {
	handler := newTestHandler(t, NewRegistry(memory.NewBackend(), noopLogout))

	for _, url := range []string{"/navbar/theme", "/navbar/drawer/open", "/navbar/drawer/close"} {
		res := serve(handler, request{Method: http.MethodPost, URL: url, Referer: "http://evil.example/%5Cevil.example/phish"})

		if e, g := http.StatusSeeOther, res.Code; e != g {
			t.Fatalf("%s: res.Code: expected '%v', got '%v'", url, e, g)
		}

		if e, g := "/", res.Header().Get("Location"); e != g {
			t.Errorf("%s: Location: expected '%v', got '%v'", url, e, g)
		}
	}
}
