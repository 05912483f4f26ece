package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/drone/envsubst"
	"github.com/pkg/errors"

	"github.com/goccy/go-yaml"
)

var getEnv = os.Getenv

// interpolate decodes a scalar as a string and expands its ${VAR} references.
func interpolate(unmarshal func(any) error) (string, error) {
	var str string

	if err := unmarshal(&str); err != nil {
		return "", errors.WithStack(err)
	}

	str, err := envsubst.Eval(str, getEnv)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return str, nil
}

type InterpolatedString string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (is *InterpolatedString) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	*is = InterpolatedString(str)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedString)

type InterpolatedInt int

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ii *InterpolatedInt) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	intVal, err := strconv.ParseInt(str, 10, 32)
	if err != nil {
		return errors.WithStack(err)
	}

	*ii = InterpolatedInt(int(intVal))

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedInt)

type InterpolatedFloat float64

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ifl *InterpolatedFloat) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	floatVal, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return errors.WithStack(err)
	}

	*ifl = InterpolatedFloat(floatVal)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedFloat)

type InterpolatedBool bool

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (ib *InterpolatedBool) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	boolVal, err := strconv.ParseBool(str)
	if err != nil {
		return errors.WithStack(err)
	}

	*ib = InterpolatedBool(boolVal)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedBool)

// InterpolatedLevel accepts either a numeric slog level or its name
// ("debug", "info", "warn+2"...).
type InterpolatedLevel slog.Level

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (il *InterpolatedLevel) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	if intVal, err := strconv.ParseInt(str, 10, 32); err == nil {
		*il = InterpolatedLevel(intVal)
		return nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(str)); err != nil {
		return errors.Wrapf(err, "invalid logging level '%s'", str)
	}

	*il = InterpolatedLevel(level)

	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (il InterpolatedLevel) MarshalYAML() (any, error) {
	return slog.Level(il).String(), nil
}

var (
	_ yaml.InterfaceUnmarshaler = new(InterpolatedLevel)
	_ yaml.InterfaceMarshaler   = InterpolatedLevel(0)
)

// InterpolatedMap holds free form backend options, every string leaf being
// interpolated.
type InterpolatedMap struct {
	Data map[string]any
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (im *InterpolatedMap) UnmarshalYAML(unmarshal func(any) error) error {
	var data map[string]any

	if err := unmarshal(&data); err != nil {
		return errors.WithStack(err)
	}

	interpolated, err := interpolateRecursive(data)
	if err != nil {
		return errors.WithStack(err)
	}

	im.Data, _ = interpolated.(map[string]any)

	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (im *InterpolatedMap) MarshalYAML() (any, error) {
	return im.Data, nil
}

func interpolateRecursive(data any) (any, error) {
	switch typ := data.(type) {
	case map[string]any:
		for key, value := range typ {
			value, err := interpolateRecursive(value)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[key] = value
		}

	case []any:
		for idx := range typ {
			value, err := interpolateRecursive(typ[idx])
			if err != nil {
				return nil, errors.WithStack(err)
			}

			typ[idx] = value
		}

	case string:
		value, err := envsubst.Eval(typ, getEnv)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		data = value
	}

	return data, nil
}

type InterpolatedStringSlice []string

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (iss *InterpolatedStringSlice) UnmarshalYAML(unmarshal func(any) error) error {
	var data []string

	if err := unmarshal(&data); err != nil {
		return errors.WithStack(err)
	}

	for index, value := range data {
		value, err := envsubst.Eval(value, getEnv)
		if err != nil {
			return errors.WithStack(err)
		}

		data[index] = value
	}

	*iss = data

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedStringSlice)

type InterpolatedDuration time.Duration

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (id *InterpolatedDuration) UnmarshalYAML(unmarshal func(any) error) error {
	str, err := interpolate(unmarshal)
	if err != nil {
		return errors.WithStack(err)
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		nanoseconds, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errors.WithStack(err)
		}

		duration = time.Duration(nanoseconds)
	}

	*id = InterpolatedDuration(duration)

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(InterpolatedDuration)

// MarshalYAML implements yaml.InterfaceMarshaler.
func (id *InterpolatedDuration) MarshalYAML() (any, error) {
	duration := time.Duration(*id)

	return duration.String(), nil
}

var _ yaml.InterfaceMarshaler = new(InterpolatedDuration)

func NewInterpolatedDuration(d time.Duration) *InterpolatedDuration {
	id := InterpolatedDuration(d)
	return &id
}
