package plugin

import "context"

// NullName is the display name of every Null factory.
const NullName = "None"

// nullFactory stands in for an absent plugin of a category.
type nullFactory struct {
	category Category
}

// Null returns the Null factory for category.
func Null(category Category) Factory {
	return nullFactory{category: category}
}

// IsNull reports whether f is a Null factory.
func IsNull(f Factory) bool {
	_, ok := f.(nullFactory)
	return ok
}

func (nullFactory) Name() string        { return NullName }
func (nullFactory) Description() string { return "" }

// Match never matches so the Null factory cannot be selected by name.
func (nullFactory) Match(string) bool { return false }

func (nullFactory) Default(OptionsProvider) (Config, error) { return nil, nil }

func (nullFactory) Acquire(context.Context, OptionsProvider, Input, RunLevel) (Config, error) {
	return nil, nil
}
