package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type Theme struct {
	Storage     ThemeStorage          `yaml:"storage"`
	IdleTimeout *InterpolatedDuration `yaml:"idleTimeout"`
}

type ThemeStorage struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultThemeConfig() Theme {
	return Theme{
		Storage: ThemeStorage{
			Type: "${SYSCOMMERCE_THEME_STORAGE_TYPE:-sqlite}",
			Options: &InterpolatedMap{
				Data: map[string]any{
					"path": "${SYSCOMMERCE_THEME_STORAGE_PATH:-preferences.db}",
				},
			},
		},
		IdleTimeout: NewInterpolatedDuration(time.Hour),
	}
}

func NewThemeConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":              []*yaml.Comment{yaml.HeadComment(" Theme configuration")},
		".storage.type": []*yaml.Comment{yaml.HeadComment(" Theme preference storage type", " Available: memory, sqlite, s3")},
		".idleTimeout":  []*yaml.Comment{yaml.HeadComment(" Navbar state of clients idle for longer is released from memory")},
		".storage.options": []*yaml.Comment{
			yaml.HeadComment(
				" Theme preference storage options",
				" sqlite: path",
				" s3: endpoint, user, secret, token, secure, region, bucket, prefix",
			),
		},
	}
}
