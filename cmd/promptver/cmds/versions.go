package cmds

import (
	"context"

	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"
	"github.com/go-go-golems/promptver/pkg/prompts"
)

// PackInfo describes a loaded pack without resolving any of its versions.
type PackInfo struct {
	Name        string
	Description string
	Path        string
	Default     string
	Strategy    string
	Versions    []string
}

type VersionsSettings struct {
	Paths []string `glazed.parameter:"paths"`
}

type VersionsCommand struct {
	*glazedcmds.CommandDescription
}

var _ glazedcmds.GlazeCommand = (*VersionsCommand)(nil)

func NewVersionsCommand() (*VersionsCommand, error) {
	glazedParameterLayer, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}

	return &VersionsCommand{
		CommandDescription: glazedcmds.NewCommandDescription(
			"versions",
			glazedcmds.WithShort("List the versions, default and strategy of each prompt"),
			glazedcmds.WithArguments(newPathsArgument()),
			glazedcmds.WithLayersList(glazedParameterLayer),
		),
	}, nil
}

func (c *VersionsCommand) RunIntoGlazeProcessor(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	gp middlewares.Processor,
) error {
	s := &VersionsSettings{}
	if err := parsedLayers.InitializeStruct(layers.DefaultSlug, s); err != nil {
		return err
	}

	infos, err := packInfos(s.Paths)
	if err != nil {
		return err
	}

	for _, info := range infos {
		row := types.NewRow(
			types.MRP("name", info.Name),
			types.MRP("description", info.Description),
			types.MRP("path", info.Path),
			types.MRP("default", info.Default),
			types.MRP("strategy", info.Strategy),
			types.MRP("versions", info.Versions),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func packInfos(paths []string) ([]PackInfo, error) {
	ps, err := loadPacks(paths)
	if err != nil {
		return nil, err
	}

	infos := make([]PackInfo, 0, len(ps))
	for _, p := range ps {
		versions, err := prompts.New(p).Versions()
		if err != nil {
			return nil, err
		}
		infos = append(infos, PackInfo{
			Name:        p.Name(),
			Description: p.Description,
			Path:        p.Path(),
			Default:     p.DefaultVersion(),
			Strategy:    p.SelectionStrategy().String(),
			Versions:    versions,
		})
	}
	return infos, nil
}
