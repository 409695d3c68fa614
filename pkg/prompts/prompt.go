// Package prompts resolves versioned prompt text.
//
// A prompt is described by a Definition: a name, a Registry of version
// generators and a default version. Definitions can optionally pick their
// own selection Strategy and token Estimator by implementing
// StrategyProvider and EstimatorProvider.
//
//	p := prompts.New(&SummarizePrompt{})
//	res, err := p.Resolve("")   // strategy decides
//	res, err = p.Resolve("v2")  // explicit version wins
//
// Resolution is synchronous and keeps no state between calls. Every error
// is returned unchanged to the caller; there is no fallback to the default
// version.
package prompts

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Definition is what a concrete prompt implements.
type Definition interface {
	// Name is a stable label for the prompt, copied into every Result.
	Name() string
	// Versions returns the registry to resolve against. It is called once
	// per resolution, so implementations may build it fresh or cache it.
	Versions() (*Registry, error)
	DefaultVersion() string
}

// StrategyProvider overrides the default selection strategy.
type StrategyProvider interface {
	SelectionStrategy() Strategy
}

// EstimatorProvider overrides the default token estimator.
type EstimatorProvider interface {
	TokenEstimator() Estimator
}

type Prompt struct {
	def       Definition
	picker    Picker
	estimator Estimator
	logger    zerolog.Logger
	hasLogger bool
}

type Option func(*Prompt)

// WithPicker replaces the randomness used by the random strategy.
func WithPicker(picker Picker) Option {
	return func(p *Prompt) {
		p.picker = picker
	}
}

// WithEstimator takes precedence over the definition's own estimator.
func WithEstimator(estimator Estimator) Option {
	return func(p *Prompt) {
		p.estimator = estimator
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Prompt) {
		p.logger = logger
		p.hasLogger = true
	}
}

// New wraps def so it can be resolved fluently: New(def).Text("").
func New(def Definition, opts ...Option) *Prompt {
	p := &Prompt{def: def}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Prompt) Definition() Definition {
	return p.def
}

func (p *Prompt) Name() string {
	return p.def.Name()
}

// Versions lists the version identifiers of the underlying registry.
func (p *Prompt) Versions() ([]string, error) {
	registry, err := p.registry()
	if err != nil {
		return nil, err
	}
	return registry.Versions(), nil
}

// Resolve produces the text for version. An empty version lets the
// selection strategy decide.
func (p *Prompt) Resolve(version string) (Result, error) {
	logger := p.log()

	registry, err := p.registry()
	if err != nil {
		return Result{}, err
	}

	if version == "" {
		strategy := p.strategy()
		version, err = strategy.Select(registry.Versions(), p.def.DefaultVersion(), p.picker)
		if err != nil {
			return Result{}, err
		}
		logger.Trace().
			Str("prompt", p.def.Name()).
			Str("strategy", strategy.String()).
			Str("version", version).
			Msg("selected prompt version")
	}

	text, err := registry.Resolve(version)
	if err != nil {
		return Result{}, err
	}

	tokenCount := p.tokenEstimator()(text)

	logger.Debug().
		Str("prompt", p.def.Name()).
		Str("version", version).
		Int("tokens", tokenCount).
		Msg("resolved prompt")

	return Result{
		Version:    version,
		Text:       text,
		TokenCount: tokenCount,
		Name:       p.def.Name(),
	}, nil
}

// Text is Resolve without the metadata.
func (p *Prompt) Text(version string) (string, error) {
	res, err := p.Resolve(version)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (p *Prompt) registry() (*Registry, error) {
	registry, err := p.def.Versions()
	if err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, &ConfigurationError{Field: "versions", Reason: p.def.Name() + " returned a nil registry"}
	}
	return registry, nil
}

func (p *Prompt) strategy() Strategy {
	if sp, ok := p.def.(StrategyProvider); ok {
		return sp.SelectionStrategy()
	}
	return Default()
}

func (p *Prompt) tokenEstimator() Estimator {
	if p.estimator != nil {
		return p.estimator
	}
	if ep, ok := p.def.(EstimatorProvider); ok {
		if e := ep.TokenEstimator(); e != nil {
			return e
		}
	}
	return DefaultEstimator()
}

func (p *Prompt) log() *zerolog.Logger {
	if p.hasLogger {
		return &p.logger
	}
	return &log.Logger
}

// Resolve is New(def).Resolve(version).
func Resolve(def Definition, version string) (Result, error) {
	return New(def).Resolve(version)
}

// TextOf is New(def).Text(version).
func TextOf(def Definition, version string) (string, error) {
	return New(def).Text(version)
}
