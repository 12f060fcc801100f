// Package ai defines the text-completion capability consumed by the
// assistant and matching engines. Implementations live in subpackages; the
// engines only ever see this interface and treat every failure the same way:
// fall back to a deterministic response and keep going.
package ai

import "context"

// Completer produces a text completion for a prompt. It is expected to be
// slow and unreliable; callers must not assume the output is well formed.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Options carries optional generation parameters.
type Options struct {
	// Temperature overrides the provider default when non-nil.
	Temperature *float64
}

// Option mutates Options.
type Option func(*Options)

// WithTemperature sets the sampling temperature for a single call.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// BuildOptions folds the provided options into an Options value.
func BuildOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}
