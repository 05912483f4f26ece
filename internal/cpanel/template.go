package cpanel

import (
	"embed"
	"time"

	"github.com/bornholm/syscommerce/internal/nav"
	"github.com/bornholm/syscommerce/internal/store"
	"github.com/bornholm/syscommerce/internal/ui"
)

//go:embed templates/**
var templateFs embed.FS

// UserTemplateData contains information about a user
type UserTemplateData struct {
	ID          int64
	Provider    string
	Username    string
	Email       string
	Role        nav.Role
	CreatedAt   time.Time
	ConnectedAt time.Time
}

// CPanelTemplateData contains the data needed to render the control panel
type CPanelTemplateData struct {
	ui.PageTemplateData
	Profile        UserTemplateData
	ActiveSessions int64
	IsAdmin        bool
	UserCount      int64
	Users          []UserTemplateData
	Roles          []nav.Role
	ErrorMessage   string
}

// NewUserTemplateData creates a new user template data from a store.User
func NewUserTemplateData(user *store.User) UserTemplateData {
	return UserTemplateData{
		ID:          user.ID,
		Provider:    user.Provider,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		ConnectedAt: user.ConnectedAt,
	}
}
