// Package catalog keeps prompt definitions addressable by name.
package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	ErrPromptNotFound  = errors.New("prompt not found")
	ErrDuplicatePrompt = errors.New("prompt already registered")
)

// Catalog is a thread-safe name -> prompt mapping.
type Catalog struct {
	mu      sync.RWMutex
	prompts map[string]*prompts.Prompt
	opts    []prompts.Option
}

// New creates an empty catalog. opts are applied to every registered
// definition.
func New(opts ...prompts.Option) *Catalog {
	return &Catalog{
		prompts: map[string]*prompts.Prompt{},
		opts:    opts,
	}
}

func (c *Catalog) Register(def prompts.Definition) error {
	if def == nil {
		return &prompts.ConfigurationError{Field: "definition", Reason: "cannot register a nil definition"}
	}
	name := def.Name()
	if name == "" {
		return &prompts.ConfigurationError{Field: "name", Reason: "definition has an empty name"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.prompts[name]; ok {
		return errors.Wrapf(ErrDuplicatePrompt, "prompt %s", name)
	}
	c.prompts[name] = prompts.New(def, c.opts...)
	return nil
}

func (c *Catalog) MustRegister(defs ...prompts.Definition) {
	for _, def := range defs {
		if err := c.Register(def); err != nil {
			panic(err)
		}
	}
}

func (c *Catalog) Lookup(name string) (*prompts.Prompt, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.prompts[name]
	if !ok {
		return nil, errors.Wrapf(ErrPromptNotFound, "prompt %s", name)
	}
	return p, nil
}

// Names returns the registered prompt names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.prompts))
	for name := range c.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.prompts)
}

func (c *Catalog) Resolve(name string, version string) (prompts.Result, error) {
	p, err := c.Lookup(name)
	if err != nil {
		return prompts.Result{}, err
	}
	return p.Resolve(version)
}

// Request names a prompt and, optionally, the version to produce.
type Request struct {
	Name    string
	Version string
}

// ResolveAll resolves every request concurrently. Results are returned in
// request order; the first error cancels the remaining work.
func (c *Catalog) ResolveAll(ctx context.Context, requests []Request) ([]prompts.Result, error) {
	results := make([]prompts.Result, len(requests))
	batchID := uuid.NewString()
	logger := log.With().Str("batch_id", batchID).Logger()
	logger.Debug().Int("requests", len(requests)).Msg("resolving batch")

	eg, ctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		i, req := i, req
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.Resolve(req.Name, req.Version)
			if err != nil {
				logger.Debug().Err(err).Str("prompt", req.Name).Msg("resolution failed")
				return errors.Wrapf(err, "could not resolve %s", req.Name)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
