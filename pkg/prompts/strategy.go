package prompts

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

type StrategyKind int

const (
	StrategyDefault StrategyKind = iota
	StrategyRandom
	StrategyCustom
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyDefault:
		return "default"
	case StrategyRandom:
		return "random"
	case StrategyCustom:
		return "custom"
	default:
		return "unknown"
	}
}

func (k StrategyKind) MarshalText() ([]byte, error) {
	if k == StrategyCustom {
		return nil, errors.New("custom strategies cannot be serialized")
	}
	return []byte(k.String()), nil
}

func (k *StrategyKind) UnmarshalText(text []byte) error {
	s, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*k = s.Kind()
	return nil
}

// Rule picks a version from the available identifiers. Its result is used
// verbatim; an unknown identifier surfaces later as ErrVersionNotFound.
type Rule func(available []string) string

// Picker returns an index in [0, n).
type Picker func(n int) int

// DefaultPicker draws uniformly from math/rand/v2.
func DefaultPicker(n int) int {
	return rand.IntN(n)
}

// Strategy decides which version to resolve when the caller did not ask
// for one. The zero value selects the definition's default version.
type Strategy struct {
	kind StrategyKind
	rule Rule
}

func Default() Strategy {
	return Strategy{kind: StrategyDefault}
}

func Random() Strategy {
	return Strategy{kind: StrategyRandom}
}

func Custom(rule Rule) Strategy {
	return Strategy{kind: StrategyCustom, rule: rule}
}

// ParseStrategy accepts the names of the strategies that need no code:
// "default" (or an empty string) and "random".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return Default(), nil
	case "random":
		return Random(), nil
	default:
		return Strategy{}, &ConfigurationError{
			Field:  "strategy",
			Reason: "unknown selection strategy '" + s + "', expected default or random",
		}
	}
}

func (s Strategy) Kind() StrategyKind {
	return s.kind
}

func (s Strategy) String() string {
	return s.kind.String()
}

// Select returns the version to resolve. A nil pick falls back to
// DefaultPicker.
func (s Strategy) Select(available []string, defaultVersion string, pick Picker) (string, error) {
	switch s.kind {
	case StrategyDefault:
		return defaultVersion, nil

	case StrategyRandom:
		if len(available) == 0 {
			return "", ErrNoVersionsAvailable
		}
		if pick == nil {
			pick = DefaultPicker
		}
		idx := pick(len(available))
		if idx < 0 || idx >= len(available) {
			return "", errors.Errorf("picker returned index %d outside [0, %d)", idx, len(available))
		}
		return available[idx], nil

	case StrategyCustom:
		if s.rule == nil {
			return "", &ConfigurationError{Field: "strategy", Reason: "custom strategy has no rule"}
		}
		return s.rule(available), nil

	default:
		return "", &ConfigurationError{Field: "strategy", Reason: "unknown strategy kind " + s.kind.String()}
	}
}
