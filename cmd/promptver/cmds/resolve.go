package cmds

import (
	"context"

	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"
	"github.com/go-go-golems/promptver/pkg/catalog"
	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/rs/zerolog/log"
)

type ResolveSettings struct {
	Paths   []string `glazed.parameter:"paths"`
	Prompts []string `glazed.parameter:"prompt"`
	Version string   `glazed.parameter:"version"`
}

func newResolveFlags() []*parameters.ParameterDefinition {
	return []*parameters.ParameterDefinition{
		parameters.NewParameterDefinition(
			"version",
			parameters.ParameterTypeString,
			parameters.WithHelp("Version to resolve, defaults to the selection strategy"),
		),
		parameters.NewParameterDefinition(
			"prompt",
			parameters.ParameterTypeStringList,
			parameters.WithHelp("Only resolve prompts matching these names or glob patterns"),
		),
	}
}

func newPathsArgument() *parameters.ParameterDefinition {
	return parameters.NewParameterDefinition(
		"paths",
		parameters.ParameterTypeStringList,
		parameters.WithHelp("Prompt pack files or directories"),
		parameters.WithRequired(true),
	)
}

type ResolveCommand struct {
	*glazedcmds.CommandDescription
}

var _ glazedcmds.GlazeCommand = (*ResolveCommand)(nil)

func NewResolveCommand() (*ResolveCommand, error) {
	glazedParameterLayer, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}

	return &ResolveCommand{
		CommandDescription: glazedcmds.NewCommandDescription(
			"resolve",
			glazedcmds.WithShort("Resolve prompts from YAML packs"),
			glazedcmds.WithLong("Resolve every prompt declared in the given pack files and directories.\n"+
				"Without --version each prompt picks its version through its selection strategy."),
			glazedcmds.WithFlags(append(newResolveFlags(), NewEstimatorFlags()...)...),
			glazedcmds.WithArguments(newPathsArgument()),
			glazedcmds.WithLayersList(glazedParameterLayer),
		),
	}, nil
}

func (c *ResolveCommand) RunIntoGlazeProcessor(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	gp middlewares.Processor,
) error {
	s := &ResolveSettings{}
	if err := parsedLayers.InitializeStruct(layers.DefaultSlug, s); err != nil {
		return err
	}
	es := &EstimatorSettings{}
	if err := parsedLayers.InitializeStruct(layers.DefaultSlug, es); err != nil {
		return err
	}

	results, err := resolvePacks(ctx, es, s)
	if err != nil {
		return err
	}

	for _, res := range results {
		row := types.NewRow(
			types.MRP("name", res.Name),
			types.MRP("version", res.Version),
			types.MRP("token_count", res.TokenCount),
			types.MRP("text", res.Text),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func resolvePacks(ctx context.Context, es *EstimatorSettings, s *ResolveSettings) ([]prompts.Result, error) {
	opts, err := es.PromptOptions()
	if err != nil {
		return nil, err
	}
	ps, err := loadPacks(s.Paths)
	if err != nil {
		return nil, err
	}

	c := catalog.New(opts...)
	for _, p := range ps {
		if err := c.Register(p); err != nil {
			return nil, err
		}
	}

	names, err := MatchNames(c.Names(), s.Prompts)
	if err != nil {
		return nil, err
	}
	requests := make([]catalog.Request, 0, len(names))
	for _, name := range names {
		requests = append(requests, catalog.Request{Name: name, Version: s.Version})
	}

	log.Debug().Int("packs", len(ps)).Int("requests", len(requests)).Msg("resolving prompts")
	return c.ResolveAll(ctx, requests)
}
