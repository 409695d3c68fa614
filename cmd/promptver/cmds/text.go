package cmds

import (
	"context"
	"io"
	"strings"

	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/promptver/pkg/prompts"
)

// TextCommand prints only the resolved texts, ready to be piped into a
// model.
type TextCommand struct {
	*glazedcmds.CommandDescription
}

var _ glazedcmds.WriterCommand = (*TextCommand)(nil)

func NewTextCommand() (*TextCommand, error) {
	return &TextCommand{
		CommandDescription: glazedcmds.NewCommandDescription(
			"text",
			glazedcmds.WithShort("Print the resolved prompt texts"),
			glazedcmds.WithFlags(append(newResolveFlags(), NewEstimatorFlags()...)...),
			glazedcmds.WithArguments(newPathsArgument()),
		),
	}, nil
}

func (c *TextCommand) RunIntoWriter(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	w io.Writer,
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
	return writeTexts(w, results)
}

// writeTexts writes every text followed by a newline, unless it already ends
// with one.
func writeTexts(w io.Writer, results []prompts.Result) error {
	for _, res := range results {
		text := res.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}
