// Package agent selects and constructs a reasoning strategy over a
// populated ontology graph.
package agent

import (
	"errors"
	"fmt"

	"github.com/tagus/supplysense/pkg/goalplan"
	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/logging"
	"github.com/tagus/supplysense/pkg/ontology"
	"github.com/tagus/supplysense/pkg/reflex"
	"github.com/tagus/supplysense/pkg/worldmodel"
)

// ErrUnknownStrategy is returned by New for a strategy name outside
// Strategies().
var ErrUnknownStrategy = errors.New("agent: unknown strategy")

// Strategy names accepted by New.
const (
	StrategyReflex     = reflex.Strategy
	StrategyWorldModel = worldmodel.Strategy
	StrategyGoalBased  = goalplan.Strategy
)

// Options holds cross-strategy construction settings.
type Options struct {
	logger logging.Logger
	memory interfaces.ContextMemory
}

// Option configures agent construction.
type Option func(*Options)

// WithLogger sets the logger passed to the constructed strategy.
func WithLogger(logger logging.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithMemory sets the context memory. Only the world-model strategy
// consumes it; the others ignore the option.
func WithMemory(m interfaces.ContextMemory) Option {
	return func(o *Options) {
		o.memory = m
	}
}

// New constructs the named strategy over g.
func New(strategy string, g *ontology.Graph, opts ...Option) (interfaces.Agent, error) {
	options := &Options{logger: logging.New()}
	for _, opt := range opts {
		opt(options)
	}

	switch strategy {
	case StrategyReflex:
		return reflex.New(g, reflex.WithLogger(options.logger)), nil

	case StrategyWorldModel:
		engine := reflex.New(g, reflex.WithLogger(options.logger))
		wmOpts := []worldmodel.Option{worldmodel.WithLogger(options.logger)}
		if options.memory != nil {
			wmOpts = append(wmOpts, worldmodel.WithMemory(options.memory))
		}
		return worldmodel.New(g, engine, wmOpts...), nil

	case StrategyGoalBased:
		engine := reflex.New(g, reflex.WithLogger(options.logger))
		return goalplan.New(g, engine, goalplan.WithLogger(options.logger)), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// Strategies returns the accepted strategy names.
func Strategies() []string {
	return []string{StrategyReflex, StrategyWorldModel, StrategyGoalBased}
}
