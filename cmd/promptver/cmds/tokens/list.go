package tokens

import (
	"context"

	"github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"
	ptokens "github.com/go-go-golems/promptver/pkg/tokens"
	"github.com/mb0/glob"
	"github.com/tiktoken-go/tokenizer"
)

type ListModelsSettings struct {
	Match string `glazed.parameter:"match"`
}

type ListModelsCommand struct {
	*cmds.CommandDescription
}

var _ cmds.GlazeCommand = (*ListModelsCommand)(nil)

func NewListModelsCommand() (*ListModelsCommand, error) {
	glazedParameterLayer, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}

	return &ListModelsCommand{
		CommandDescription: cmds.NewCommandDescription(
			"list-models",
			cmds.WithShort("List available models"),
			cmds.WithFlags(
				parameters.NewParameterDefinition(
					"match",
					parameters.ParameterTypeString,
					parameters.WithHelp("Only list models matching this glob pattern"),
				),
			),
			cmds.WithLayersList(glazedParameterLayer),
		),
	}, nil
}

func (c *ListModelsCommand) RunIntoGlazeProcessor(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	gp middlewares.Processor,
) error {
	s := &ListModelsSettings{}
	if err := parsedLayers.InitializeStruct(layers.DefaultSlug, s); err != nil {
		return err
	}

	models, err := filterModels(ptokens.Models(), s.Match)
	if err != nil {
		return err
	}
	for _, m := range models {
		if err := gp.AddRow(ctx, types.NewRow(types.MRP("model_name", m))); err != nil {
			return err
		}
	}
	return nil
}

// filterModels keeps the models matching pattern. An empty pattern keeps
// everything.
func filterModels(models []tokenizer.Model, pattern string) ([]string, error) {
	ret := []string{}
	for _, m := range models {
		if pattern != "" {
			matching, err := glob.Match(pattern, string(m))
			if err != nil {
				return nil, err
			}
			if !matching {
				continue
			}
		}
		ret = append(ret, string(m))
	}
	return ret, nil
}

type ListEncodingsCommand struct {
	*cmds.CommandDescription
}

var _ cmds.GlazeCommand = (*ListEncodingsCommand)(nil)

func NewListEncodingsCommand() (*ListEncodingsCommand, error) {
	glazedParameterLayer, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}

	return &ListEncodingsCommand{
		CommandDescription: cmds.NewCommandDescription(
			"list-encodings",
			cmds.WithShort("List available encodings"),
			cmds.WithLayersList(glazedParameterLayer),
		),
	}, nil
}

func (c *ListEncodingsCommand) RunIntoGlazeProcessor(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	gp middlewares.Processor,
) error {
	for _, e := range ptokens.Encodings() {
		if err := gp.AddRow(ctx, types.NewRow(types.MRP("encoding_name", string(e)))); err != nil {
			return err
		}
	}
	return nil
}
