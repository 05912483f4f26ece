package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Providers   AuthProviders      `yaml:"providers"`
	DefaultRole InterpolatedString `yaml:"defaultRole"`
	Roles       []Role             `yaml:"roles"`
}

type Role struct {
	Role InterpolatedString `yaml:"role"`
	Rule InterpolatedString `yaml:"rule"`
}

type AuthProviders struct {
	Google OAuth2Provider `yaml:"google"`
	Github OAuth2Provider `yaml:"github"`
	Gitea  GiteaProvider  `yaml:"gitea"`
	OIDC   OIDCProvider   `yaml:"oidc"`
}

type OAuth2Provider struct {
	Key    InterpolatedString      `yaml:"key"`
	Secret InterpolatedString      `yaml:"secret"`
	Scopes InterpolatedStringSlice `yaml:"scopes"`
}

type OIDCProvider struct {
	OAuth2Provider `yaml:",inline"`
	DiscoveryURL   InterpolatedString `yaml:"discoveryUrl"`
	Icon           InterpolatedString `yaml:"icon"`
	Label          InterpolatedString `yaml:"label"`
}

type GiteaProvider struct {
	OAuth2Provider `yaml:",inline"`
	TokenURL       InterpolatedString `yaml:"tokenUrl"`
	AuthURL        InterpolatedString `yaml:"authUrl"`
	ProfileURL     InterpolatedString `yaml:"profileUrl"`
	Label          InterpolatedString `yaml:"label"`
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Providers:   AuthProviders{},
		DefaultRole: "${SYSCOMMERCE_AUTH_DEFAULT_ROLE:-user}",
		Roles: []Role{
			{
				Role: "admin",
				Rule: "false",
			},
		},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":               []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".providers":     []*yaml.Comment{yaml.HeadComment(" OAuth2 identity providers, a provider is enabled when its key is set")},
		".defaultRole":   []*yaml.Comment{yaml.HeadComment(" Role given to new users when no rule matches (user, seller, admin)")},
		".roles":         []*yaml.Comment{yaml.HeadComment(" Role assignment rules, evaluated in order, first match wins")},
		".roles[0].rule": []*yaml.Comment{yaml.HeadComment(" Available: provider, subject, username, email, domainOf(email)", " See https://expr-lang.org/docs/language-definition")},
	}
}
