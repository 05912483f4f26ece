package theme

import "github.com/pkg/errors"

type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// DefaultMode is adopted when no mode has been persisted yet.
const DefaultMode = Dark

var ErrInvalidMode = errors.New("invalid theme mode")

func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	default:
		return "", errors.Wrapf(ErrInvalidMode, "unexpected value '%s'", raw)
	}
}

// Opposite returns the mode a toggle switches to.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}

	return Dark
}

func (m Mode) String() string {
	return string(m)
}
