// Package options implements the named option lookup consumed by plugins.
package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/sitecert/core/plugin"
)

var ErrMissingOption = errors.New("missing required option")

var _ plugin.OptionsProvider = (*Options)(nil)

// Options is a case-insensitive set of named option values.
// A switch set with an empty value counts as true.
type Options struct {
	values map[string]string
}

// New returns options holding a copy of values.
func New(values map[string]string) *Options {
	o := &Options{values: make(map[string]string, len(values))}
	for k, v := range values {
		o.Set(k, v)
	}
	return o
}

// Set stores value under name and returns o for chaining.
func (o *Options) Set(name, value string) *Options {
	if o.values == nil {
		o.values = make(map[string]string)
	}
	o.values[key(name)] = value
	return o
}

// SetIf stores value only when it is not empty.
func (o *Options) SetIf(name, value string) *Options {
	if strings.TrimSpace(value) != "" {
		o.Set(name, value)
	}
	return o
}

func (o *Options) String(name string) (string, bool) {
	v, ok := o.values[key(name)]
	return v, ok
}

// RequiredString returns the trimmed value of name, or ErrMissingOption when
// it is unset or blank.
func (o *Options) RequiredString(name string) (string, error) {
	v, ok := o.values[key(name)]
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingOption, name)
	}
	return strings.TrimSpace(v), nil
}

func (o *Options) Bool(name string) bool {
	v, ok := o.values[key(name)]
	if !ok {
		return false
	}
	if strings.TrimSpace(v) == "" {
		return true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
