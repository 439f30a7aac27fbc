package ui

import (
	"strings"

	"github.com/charmbracelet/huh"
)

// --- Input ---

// InputOption configures an Input prompt.
type InputOption func(*inputConfig)

type inputConfig struct {
	description  string
	placeholder  string
	defaultValue string
	validate     func(string) error
}

// WithInputDescription sets the description for an Input prompt.
func WithInputDescription(desc string) InputOption {
	return func(c *inputConfig) {
		c.description = desc
	}
}

// WithPlaceholder sets the placeholder text for an Input prompt.
func WithPlaceholder(placeholder string) InputOption {
	return func(c *inputConfig) {
		c.placeholder = placeholder
	}
}

// WithDefault sets the value returned when the user submits an empty answer.
// It doubles as the placeholder unless one is set explicitly.
func WithDefault(value string) InputOption {
	return func(c *inputConfig) {
		c.defaultValue = value
	}
}

// WithValidate rejects answers for which fn returns an error.
func WithValidate(fn func(string) error) InputOption {
	return func(c *inputConfig) {
		c.validate = fn
	}
}

func newInputConfig(opts []InputOption) inputConfig {
	cfg := inputConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.placeholder == "" {
		cfg.placeholder = cfg.defaultValue
	}
	return cfg
}

// answer applies the default to a raw answer.
func (c inputConfig) answer(raw string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return v
	}
	return c.defaultValue
}

// Input displays a single text input prompt and returns the entered value.
func Input(title string, opts ...InputOption) (string, error) {
	cfg := newInputConfig(opts)

	var result string
	input := huh.NewInput().
		Title(title).
		Value(&result)

	if cfg.description != "" {
		input = input.Description(cfg.description)
	}
	if cfg.placeholder != "" {
		input = input.Placeholder(cfg.placeholder)
	}
	if cfg.validate != nil {
		input = input.Validate(func(s string) error {
			return cfg.validate(cfg.answer(s))
		})
	}

	form := huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(IotaTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return cfg.answer(result), nil
}

// --- Select ---

// SelectOption represents a single option in a Select prompt.
type SelectOption[T comparable] struct {
	Label string
	Value T
}

// Select displays a selection prompt and returns the chosen value.
// The first option is preselected.
func Select[T comparable](title string, options []SelectOption[T]) (T, error) {
	var result T
	if len(options) > 0 {
		result = options[0].Value
	}

	huhOpts := make([]huh.Option[T], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[T]().
				Title(title).
				Options(huhOpts...).
				Value(&result),
		),
	).WithTheme(IotaTheme())

	if err := form.Run(); err != nil {
		return result, err
	}
	return result, nil
}

// StringOptions builds Select options whose labels are their values.
func StringOptions(values []string) []SelectOption[string] {
	opts := make([]SelectOption[string], len(values))
	for i, v := range values {
		opts[i] = SelectOption[string]{Label: v, Value: v}
	}
	return opts
}
