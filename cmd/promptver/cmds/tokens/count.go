package tokens

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	pcmds "github.com/go-go-golems/promptver/cmd/promptver/cmds"
	"github.com/go-go-golems/promptver/pkg/prompts"
	ptokens "github.com/go-go-golems/promptver/pkg/tokens"
	"github.com/pkg/errors"
)

// CountResult compares the tokenizer count with the character estimate.
type CountResult struct {
	Model         string
	Codec         string
	Bytes         int
	Tokens        int
	Estimated     int
	CharsPerToken float64
}

type CountSettings struct {
	Input string `glazed.parameter:"input"`
}

type CountCommand struct {
	*cmds.CommandDescription
}

var _ cmds.WriterCommand = (*CountCommand)(nil)

func NewCountCommand() (*CountCommand, error) {
	return &CountCommand{
		CommandDescription: cmds.NewCommandDescription(
			"count",
			cmds.WithShort("Count tokens using a specific model or encoding"),
			cmds.WithFlags(pcmds.NewEstimatorFlags()...),
			cmds.WithArguments(
				parameters.NewParameterDefinition(
					"input",
					parameters.ParameterTypeString,
					parameters.WithHelp("Input file, - for stdin"),
					parameters.WithRequired(true),
				),
			),
		),
	}, nil
}

func (cc *CountCommand) RunIntoWriter(
	ctx context.Context,
	parsedLayers *layers.ParsedLayers,
	w io.Writer,
) error {
	s := &CountSettings{}
	if err := parsedLayers.InitializeStruct(layers.DefaultSlug, s); err != nil {
		return err
	}
	es := &pcmds.EstimatorSettings{}
	if err := parsedLayers.InitializeStruct(layers.DefaultSlug, es); err != nil {
		return err
	}

	input, err := readInput(os.Stdin, s.Input)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", s.Input)
	}

	res, err := count(es, input)
	if err != nil {
		return err
	}
	return writeCount(w, res)
}

func count(es *pcmds.EstimatorSettings, input string) (CountResult, error) {
	model := es.Model
	if es.Encoding != "" {
		model = ""
	}
	codec, err := ptokens.Codec(model, es.Encoding)
	if err != nil {
		return CountResult{}, err
	}

	n, err := ptokens.Count(codec, input)
	if err != nil {
		return CountResult{}, err
	}

	charsPerToken := es.CharsPerToken
	if charsPerToken <= 0 {
		charsPerToken = prompts.DefaultCharsPerToken
	}

	return CountResult{
		Model:         model,
		Codec:         codec.GetName(),
		Bytes:         len(input),
		Tokens:        n,
		Estimated:     prompts.CharEstimator(charsPerToken)(input),
		CharsPerToken: charsPerToken,
	}, nil
}

func writeCount(w io.Writer, res CountResult) error {
	if res.Model != "" {
		if _, err := fmt.Fprintf(w, "Model: %s\n", res.Model); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w,
		"Codec: %s\nBytes: %d\nTotal tokens: %d\nEstimated tokens: %d (%g bytes per token)\n",
		res.Codec, res.Bytes, res.Tokens, res.Estimated, res.CharsPerToken,
	)
	return err
}
