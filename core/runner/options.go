package runner

import (
	"github.com/tripbench/tripbench/core/types"
)

type Option func(*options) error

type options struct {
	reasoner   ReasoningStep
	actions    types.Actions
	userPrompt string
	maxRounds  int
}

func defaultOptions() *options {
	return &options{
		userPrompt: DefaultUserPrompt,
		maxRounds:  40,
	}
}

func newOptions(opts ...Option) (*options, error) {
	options := defaultOptions()
	for _, o := range opts {
		if err := o(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

func WithReasoner(r ReasoningStep) Option {
	return func(o *options) error {
		o.reasoner = r
		return nil
	}
}

func WithActions(actions ...types.Action) Option {
	return func(o *options) error {
		o.actions = append(o.actions, actions...)
		return nil
	}
}

func WithUserPrompt(prompt string) Option {
	return func(o *options) error {
		o.userPrompt = prompt
		return nil
	}
}

func WithMaxRounds(n int) Option {
	return func(o *options) error {
		o.maxRounds = n
		return nil
	}
}
