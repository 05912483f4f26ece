package config

import (
	"log/slog"

	"github.com/goccy/go-yaml"
)

type Logger struct {
	Level InterpolatedLevel `yaml:"level"`
}

func NewDefaultLoggerConfig() Logger {
	return Logger{
		Level: InterpolatedLevel(slog.LevelInfo),
	}
}

func NewLoggerConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":       []*yaml.Comment{yaml.HeadComment(" Logger configuration")},
		".level": []*yaml.Comment{yaml.HeadComment(" Logging level, by name (debug, info, warn, error) or number (-4, 0, 4, 8)")},
	}
}
