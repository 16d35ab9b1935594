package plugin

import (
	"context"

	"github.com/dmitrymomot/sitecert/core/target"
)

// Category names a plugin family.
type Category string

const (
	CategoryTarget       Category = "target"
	CategoryValidation   Category = "validation"
	CategoryStore        Category = "store"
	CategoryInstallation Category = "installation"
)

// RunLevel describes how the engine is being driven.
type RunLevel int

const (
	RunLevelUnattended RunLevel = iota
	RunLevelSimple
	RunLevelAdvanced
)

// Interactive reports whether a user is available to answer prompts.
func (l RunLevel) Interactive() bool {
	return l != RunLevelUnattended
}

// OptionsProvider gives access to named command line options.
type OptionsProvider interface {
	// RequiredString returns the value of a mandatory option or an error
	// naming the missing option.
	RequiredString(name string) (string, error)
	// String returns the value of an optional option and whether it was set.
	String(name string) (string, bool)
	// Bool returns the value of a switch.
	Bool(name string) bool
}

// Choice is one entry of a choice list.
type Choice struct {
	Label   string
	Command string
}

// Input is the user interaction facility.
type Input interface {
	// ChoiceList shows labelled choices, paging when the list is long.
	ChoiceList(ctx context.Context, title string, choices []Choice) error
	// PromptString asks a question and returns the raw answer.
	PromptString(ctx context.Context, message string) (string, error)
	// Show prints a labelled value.
	Show(label, value string)
}

// Config is the opaque configuration produced by a factory.
type Config interface {
	PluginName() string
}

// Factory builds plugin configurations for one plugin of a category.
type Factory interface {
	Name() string
	Description() string
	Match(name string) bool
	Default(opts OptionsProvider) (Config, error)
	Acquire(ctx context.Context, opts OptionsProvider, in Input, level RunLevel) (Config, error)
}

// TargetPlugin produces certificate targets and maps scheduled targets back
// onto the catalog at renewal time.
type TargetPlugin interface {
	// Default builds a target from command line options. A nil target
	// without error means the options selected nothing usable.
	Default(ctx context.Context, opts OptionsProvider) (*target.Target, error)
	// Acquire builds a target interactively.
	Acquire(ctx context.Context, opts OptionsProvider, in Input, level RunLevel) (*target.Target, error)
	// Refresh revalidates a scheduled target before renewal. A nil target
	// cancels the renewal.
	Refresh(ctx context.Context, scheduled *target.Target) (*target.Target, error)
	// Split maps a scheduled target onto the targets to renew.
	Split(ctx context.Context, scheduled *target.Target) ([]*target.Target, error)
}
