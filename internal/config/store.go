package config

import "github.com/goccy/go-yaml"

type Store struct {
	Path InterpolatedString `yaml:"path"`
}

func NewDefaultStoreConfig() Store {
	return Store{
		Path: "${SYSCOMMERCE_STORE_PATH:-data.db}",
	}
}

func NewStoreConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Store configuration (users and sessions)")},
		".path": []*yaml.Comment{yaml.HeadComment(" SQLite database path")},
	}
}
