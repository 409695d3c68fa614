package cmds

import (
	"os"

	"github.com/go-go-golems/glazed/pkg/cli"
	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/promptver/pkg/packs"
	"github.com/go-go-golems/promptver/pkg/prompts"
	"github.com/go-go-golems/promptver/pkg/tokens"
	"github.com/spf13/cobra"
)

// EstimatorSettings select how token counts are computed. They can be set
// by flag, PROMPTVER_* environment variable or config file key.
type EstimatorSettings struct {
	Estimator string `glazed.parameter:"estimator"`
	// CharsPerToken overrides the divisor declared by a pack when it is
	// positive.
	CharsPerToken float64 `glazed.parameter:"chars-per-token"`
	Model         string  `glazed.parameter:"model"`
	Encoding      string  `glazed.parameter:"encoding"`
}

func NewEstimatorFlags() []*parameters.ParameterDefinition {
	return []*parameters.ParameterDefinition{
		parameters.NewParameterDefinition(
			"estimator",
			parameters.ParameterTypeString,
			parameters.WithHelp("Token estimator (chars, tiktoken)"),
			parameters.WithDefault("chars"),
		),
		parameters.NewParameterDefinition(
			"chars-per-token",
			parameters.ParameterTypeFloat,
			parameters.WithHelp("Characters per token for the chars estimator, overrides the pack (0: use the pack or 4)"),
			parameters.WithDefault(0.0),
		),
		parameters.NewParameterDefinition(
			"model",
			parameters.ParameterTypeString,
			parameters.WithHelp("Model whose tokenizer the tiktoken estimator uses"),
			parameters.WithDefault(string(tokens.DefaultModel)),
		),
		parameters.NewParameterDefinition(
			"encoding",
			parameters.ParameterTypeString,
			parameters.WithHelp("Tokenizer encoding, overrides --model"),
		),
	}
}

// PromptOptions turns the estimator settings into prompt options.
func (s *EstimatorSettings) PromptOptions() ([]prompts.Option, error) {
	switch s.Estimator {
	case "", "chars":
		if s.CharsPerToken < 0 {
			return nil, &prompts.ConfigurationError{Field: "chars-per-token", Reason: "must be positive"}
		}
		if s.CharsPerToken == 0 {
			return nil, nil
		}
		return []prompts.Option{prompts.WithEstimator(prompts.CharEstimator(s.CharsPerToken))}, nil
	case "tiktoken":
		var estimator prompts.Estimator
		var err error
		if s.Encoding != "" {
			estimator, err = tokens.NewEstimatorForEncoding(s.Encoding)
		} else {
			estimator, err = tokens.NewEstimator(s.Model)
		}
		if err != nil {
			return nil, err
		}
		return []prompts.Option{prompts.WithEstimator(estimator)}, nil
	default:
		return nil, &prompts.ConfigurationError{Field: "estimator", Reason: "unknown estimator " + s.Estimator}
	}
}

// BuildCobraCommand wires command into cobra. Flags that are not given on
// the command line are looked up in viper before falling back to their
// defaults.
func BuildCobraCommand(command glazedcmds.Command) (*cobra.Command, error) {
	return cli.BuildCobraCommandFromCommand(command,
		cli.WithCobraMiddlewaresFunc(getMiddlewares),
	)
}

func getMiddlewares(
	_ *cli.GlazedCommandSettings,
	cmd *cobra.Command,
	args []string,
) ([]middlewares.Middleware, error) {
	return []middlewares.Middleware{
		middlewares.ParseFromCobraCommand(cmd,
			parameters.WithParseStepSource("cobra"),
		),
		middlewares.GatherArguments(args,
			parameters.WithParseStepSource("arguments"),
		),
		middlewares.WrapWithWhitelistedLayers(
			[]string{layers.DefaultSlug},
			middlewares.GatherFlagsFromViper(parameters.WithParseStepSource("viper")),
		),
		middlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	}, nil
}

// loadPacks loads every pack file and every pack directory in paths.
func loadPacks(paths []string) ([]*packs.Pack, error) {
	var ret []*packs.Pack
	for _, path := range paths {
		if isDir(path) {
			ps, err := packs.LoadDir(path)
			if err != nil {
				return nil, err
			}
			ret = append(ret, ps...)
			continue
		}
		p, err := packs.LoadFile(path)
		if err != nil {
			return nil, err
		}
		ret = append(ret, p)
	}
	return ret, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
