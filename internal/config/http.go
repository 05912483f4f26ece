package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address   InterpolatedString `yaml:"address"`
	BaseURL   InterpolatedString `yaml:"baseUrl"`
	Session   Session            `yaml:"session"`
	RateLimit RateLimit          `yaml:"rateLimit"`
	Pprof     Pprof              `yaml:"pprof"`
}

type Session struct {
	Keys   InterpolatedStringSlice `yaml:"keys"`
	TTL    *InterpolatedDuration   `yaml:"ttl"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	Path     InterpolatedString    `yaml:"path"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
}

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

type Pprof struct {
	Enabled InterpolatedBool `yaml:"enabled"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${SYSCOMMERCE_HTTP_ADDRESS:-:8080}",
		BaseURL: "${SYSCOMMERCE_HTTP_BASE_URL:-http://localhost:8080}",
		Session: Session{
			Keys: InterpolatedStringSlice{},
			TTL:  NewInterpolatedDuration(24 * time.Hour),
			Cookie: Cookie{
				Path:     "/",
				HTTPOnly: true,
				Secure:   false,
				MaxAge:   NewInterpolatedDuration(30 * 24 * time.Hour),
			},
		},
		RateLimit: RateLimit{
			Rate:  5,
			Burst: 20,
		},
		Pprof: Pprof{
			Enabled: false,
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                       []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":               []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":               []*yaml.Comment{yaml.HeadComment(" Public base URL, used to build OAuth2 callback URLs")},
		".session.keys":          []*yaml.Comment{yaml.HeadComment(" Cookie signing keys, a random key is generated when empty")},
		".session.ttl":           []*yaml.Comment{yaml.HeadComment(" Authentication session lifetime")},
		".session.cookie.maxAge": []*yaml.Comment{yaml.HeadComment(" Browser cookie lifetime")},
		".rateLimit":             []*yaml.Comment{yaml.HeadComment(" Per client rate limit of navbar actions (events per second and burst)")},
		".pprof.enabled":         []*yaml.Comment{yaml.HeadComment(" Expose profiling endpoints under /debug/pprof")},
	}
}
