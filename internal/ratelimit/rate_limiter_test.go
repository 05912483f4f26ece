package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

func TestRateLimiterMiddleware(t *testing.T) {
	limiter := New(0, 2)

	handler := limiter.Middleware(func(w http.ResponseWriter, r *http.Request) (string, error) {
		key := r.Header.Get("X-Client")
		if key == "" {
			return "", errors.New("missing client")
		}
		return key, nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		Client         string
		ExpectedStatus int
	}

	testCases := []testCase{
		{Client: "a", ExpectedStatus: http.StatusNoContent},
		{Client: "a", ExpectedStatus: http.StatusNoContent},
		{Client: "a", ExpectedStatus: http.StatusTooManyRequests},
		{Client: "b", ExpectedStatus: http.StatusNoContent},
		{Client: "", ExpectedStatus: http.StatusInternalServerError},
	}

	for idx, tc := range testCases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Client", tc.Client)

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if e, g := tc.ExpectedStatus, res.Code; e != g {
			t.Errorf("Case #%d: res.Code: expected '%v', got '%v'", idx, e, g)
		}
	}
}
