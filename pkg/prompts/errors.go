package prompts

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidConfiguration   = errors.New("invalid configuration")
	ErrVersionNotFound        = errors.New("version not found")
	ErrInvalidGeneratorOutput = errors.New("invalid generator output")
	ErrNoVersionsAvailable    = errors.New("no versions available")
)

// ConfigurationError reports a registry or definition that cannot be used.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ErrInvalidConfiguration.Error()
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrInvalidConfiguration }

// VersionNotFoundError carries the requested version and everything that
// was available, so callers can print a precise message.
type VersionNotFoundError struct {
	Version   string
	Available []string
}

func (e *VersionNotFoundError) Error() string {
	if e == nil {
		return ErrVersionNotFound.Error()
	}
	msg := fmt.Sprintf("version '%s' not found for the selected prompt.", e.Version)
	if len(e.Available) > 0 {
		msg += " Available versions are: " + strings.Join(e.Available, ", ")
	}
	return msg
}

func (e *VersionNotFoundError) Is(target error) bool { return target == ErrVersionNotFound }

// GeneratorOutputError wraps the failure of a generator to produce text.
type GeneratorOutputError struct {
	Version string
	Err     error
}

func (e *GeneratorOutputError) Error() string {
	if e == nil {
		return ErrInvalidGeneratorOutput.Error()
	}
	if e.Err == nil {
		return fmt.Sprintf("generator for version '%s' did not produce text", e.Version)
	}
	return fmt.Sprintf("generator for version '%s' did not produce text: %v", e.Version, e.Err)
}

func (e *GeneratorOutputError) Is(target error) bool { return target == ErrInvalidGeneratorOutput }

func (e *GeneratorOutputError) Unwrap() error { return e.Err }

// IsVersionNotFound is a shortcut for errors.Is(err, ErrVersionNotFound).
func IsVersionNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrVersionNotFound)
}
