package log

import (
	"log/slog"
	"net/url"
	"strings"
)

const redacted = "xxx"

// Query parameters carrying credentials, e.g. in S3 presigned URLs.
var sensitiveParams = []string{"signature", "credential", "token", "secret", "password"}

// ScrubbedURL returns an attribute holding the URL with its password and
// credential query parameters redacted.
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, redacted)
	}

	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), redacted)
		}
	}

	if u.RawQuery != "" {
		query := u.Query()
		for key := range query {
			if isSensitiveParam(key) {
				query.Set(key, redacted)
			}
		}

		u.RawQuery = query.Encode()
	}

	return slog.String(name, u.String())
}

func isSensitiveParam(key string) bool {
	key = strings.ToLower(key)
	for _, s := range sensitiveParams {
		if strings.Contains(key, s) {
			return true
		}
	}

	return false
}
