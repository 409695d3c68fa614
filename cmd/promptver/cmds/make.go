package cmds

import (
	"context"
	"fmt"
	"io"

	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/promptver/pkg/scaffold"
	"github.com/spf13/cobra"
)

type MakePromptSettings struct {
	Name     string   `glazed.parameter:"name"`
	Package  string   `glazed.parameter:"package"`
	Versions []string `glazed.parameter:"versions"`
	Default  string   `glazed.parameter:"default"`
	Strategy string   `glazed.parameter:"strategy"`
	Dir      string   `glazed.parameter:"dir"`
	Force    bool     `glazed.parameter:"force"`
}

type MakePromptCommand struct {
	*glazedcmds.CommandDescription
}

var _ glazedcmds.WriterCommand = (*MakePromptCommand)(nil)

func NewMakePromptCommand() (*MakePromptCommand, error) {
	return &MakePromptCommand{
		CommandDescription: glazedcmds.NewCommandDescription(
			"prompt",
			glazedcmds.WithShort("Generate a Go prompt definition"),
			glazedcmds.WithFlags(
				parameters.NewParameterDefinition(
					"package",
					parameters.ParameterTypeString,
					parameters.WithHelp("Package name of the generated file"),
					parameters.WithDefault(scaffold.DefaultPackage),
				),
				parameters.NewParameterDefinition(
					"versions",
					parameters.ParameterTypeStringList,
					parameters.WithHelp("Versions to generate"),
					parameters.WithDefault([]string{"v1"}),
				),
				parameters.NewParameterDefinition(
					"default",
					parameters.ParameterTypeString,
					parameters.WithHelp("Default version, defaults to the first version"),
				),
				parameters.NewParameterDefinition(
					"strategy",
					parameters.ParameterTypeString,
					parameters.WithHelp("Selection strategy (default, random)"),
					parameters.WithDefault("default"),
				),
				parameters.NewParameterDefinition(
					"dir",
					parameters.ParameterTypeString,
					parameters.WithHelp("Directory to write the definition to"),
					parameters.WithDefault(scaffold.DefaultPackage),
				),
				parameters.NewParameterDefinition(
					"force",
					parameters.ParameterTypeBool,
					parameters.WithHelp("Overwrite an existing file"),
					parameters.WithDefault(false),
				),
			),
			glazedcmds.WithArguments(
				parameters.NewParameterDefinition(
					"name",
					parameters.ParameterTypeString,
					parameters.WithHelp("Prompt name"),
					parameters.WithRequired(true),
				),
			),
		),
	}, nil
}

func (c *MakePromptCommand) RunIntoWriter(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	w io.Writer,
) error {
	s := &MakePromptSettings{}
	if err := parsedLayers.InitializeStruct(layers.DefaultSlug, s); err != nil {
		return err
	}
	return makePrompt(w, s)
}

func makePrompt(w io.Writer, s *MakePromptSettings) error {
	opts := scaffold.Options{
		Name:     s.Name,
		Package:  s.Package,
		Versions: s.Versions,
		Default:  s.Default,
		Strategy: s.Strategy,
	}
	path, err := scaffold.WriteFile(s.Dir, opts, s.Force)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Prompt %s created at %s\n", scaffold.TypeName(opts.Name), path)
	return err
}

func newMakeCommand() (*cobra.Command, error) {
	makeCmd := &cobra.Command{
		Use:   "make",
		Short: "Generate new files",
	}

	promptCmd, err := NewMakePromptCommand()
	if err != nil {
		return nil, err
	}
	cobraPromptCmd, err := BuildCobraCommand(promptCmd)
	if err != nil {
		return nil, err
	}
	makeCmd.AddCommand(cobraPromptCmd)
	return makeCmd, nil
}
