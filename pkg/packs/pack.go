// Package packs loads prompt definitions declared in YAML files.
//
// A pack is a file like:
//
//	name: summarize
//	description: Summarize an article
//	default: v1
//	strategy: random
//	versions:
//	  v1: Summarize the following article in three sentences.
//	  v2: |
//	    You are an editor. Write a short summary of the article below.
//
// Version texts are used as-is; they are never interpreted as templates.
package packs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Pack is a file-declared prompts.Definition.
type Pack struct {
	PromptName    string               `yaml:"name" json:"name" jsonschema_description:"Stable name of the prompt, reported in every result"`
	Description   string               `yaml:"description,omitempty" json:"description,omitempty"`
	Default       string               `yaml:"default" json:"default" jsonschema_description:"Version used when none is requested"`
	Strategy      prompts.StrategyKind `yaml:"strategy,omitempty" json:"strategy,omitempty" jsonschema_description:"How a version is picked when none is requested"`
	CharsPerToken float64              `yaml:"chars_per_token,omitempty" json:"chars_per_token,omitempty" jsonschema:"exclusiveMinimum=0"`
	VersionTexts  map[string]string    `yaml:"versions" json:"versions" jsonschema:"minProperties=1"`

	path     string
	registry *prompts.Registry
	strategy prompts.Strategy
}

var _ prompts.Definition = (*Pack)(nil)
var _ prompts.StrategyProvider = (*Pack)(nil)
var _ prompts.EstimatorProvider = (*Pack)(nil)

// Load decodes and validates a single pack. The document is checked against
// Schema before it is decoded, so structural errors name the offending
// field.
func Load(r io.Reader) (*Pack, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := yaml.NewDecoder(bytes.NewReader(content)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &prompts.ConfigurationError{Reason: "empty prompt pack"}
		}
		return nil, errors.Wrap(err, "could not parse prompt pack")
	}
	if doc == nil {
		return nil, &prompts.ConfigurationError{Reason: "empty prompt pack"}
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	p := &Pack{}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(p); err != nil {
		return nil, errors.Wrap(err, "could not parse prompt pack")
	}

	if err := p.init(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile loads the pack stored at path.
func LoadFile(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load prompt pack %s", path)
	}
	p.path = path
	return p, nil
}

// LoadDir loads every *.yaml and *.yml file directly inside dir, in file
// name order.
func LoadDir(dir string) ([]*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !IsPackFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	ret := make([]*Pack, 0, len(names))
	for _, name := range names {
		p, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		ret = append(ret, p)
	}
	return ret, nil
}

func IsPackFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func (p *Pack) init() error {
	registry, strategy, err := p.build()
	if err != nil {
		return err
	}
	p.registry = registry
	p.strategy = strategy
	return nil
}

func (p *Pack) build() (*prompts.Registry, prompts.Strategy, error) {
	if strings.TrimSpace(p.PromptName) == "" {
		return nil, prompts.Strategy{}, &prompts.ConfigurationError{Field: "name", Reason: "prompt pack needs a name"}
	}
	if p.CharsPerToken < 0 {
		return nil, prompts.Strategy{}, &prompts.ConfigurationError{Field: "chars_per_token", Reason: "must be positive"}
	}

	generators := make(map[string]prompts.Generator, len(p.VersionTexts))
	for version, text := range p.VersionTexts {
		generators[version] = prompts.Text(text)
	}
	registry, err := prompts.NewRegistry(generators)
	if err != nil {
		return nil, prompts.Strategy{}, errors.Wrapf(err, "prompt pack %s", p.PromptName)
	}

	if p.Default == "" {
		return nil, prompts.Strategy{}, &prompts.ConfigurationError{Field: "default", Reason: "prompt pack needs a default version"}
	}
	if !registry.Has(p.Default) {
		return nil, prompts.Strategy{}, errors.Wrapf(
			&prompts.VersionNotFoundError{Version: p.Default, Available: registry.Versions()},
			"default version of prompt pack %s", p.PromptName,
		)
	}

	strategy, err := strategyFor(p.Strategy)
	if err != nil {
		return nil, prompts.Strategy{}, err
	}

	return registry, strategy, nil
}

func strategyFor(kind prompts.StrategyKind) (prompts.Strategy, error) {
	switch kind {
	case prompts.StrategyDefault:
		return prompts.Default(), nil
	case prompts.StrategyRandom:
		return prompts.Random(), nil
	default:
		return prompts.Strategy{}, &prompts.ConfigurationError{
			Field:  "strategy",
			Reason: "prompt packs only support the default and random strategies, got " + kind.String(),
		}
	}
}

func (p *Pack) Name() string {
	return p.PromptName
}

// Versions returns the registry built at load time. Packs assembled in
// code without Load are validated on every call.
func (p *Pack) Versions() (*prompts.Registry, error) {
	if p.registry != nil {
		return p.registry, nil
	}
	registry, _, err := p.build()
	return registry, err
}

func (p *Pack) DefaultVersion() string {
	return p.Default
}

func (p *Pack) SelectionStrategy() prompts.Strategy {
	if p.registry == nil {
		if s, err := strategyFor(p.Strategy); err == nil {
			return s
		}
	}
	return p.strategy
}

// TokenEstimator honours chars_per_token; nil means the prompts default.
func (p *Pack) TokenEstimator() prompts.Estimator {
	if p.CharsPerToken > 0 {
		return prompts.CharEstimator(p.CharsPerToken)
	}
	return nil
}

// Path is the file the pack was loaded from, if any.
func (p *Pack) Path() string {
	return p.path
}
