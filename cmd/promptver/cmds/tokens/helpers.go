package tokens

import (
	"io"
	"os"

	pcmds "github.com/go-go-golems/promptver/cmd/promptver/cmds"
	"github.com/spf13/cobra"
)

func RegisterTokenCommands(tokensCmd *cobra.Command) {
	countCmdInstance, err := NewCountCommand()
	cobra.CheckErr(err)
	countCommand, err := pcmds.BuildCobraCommand(countCmdInstance)
	cobra.CheckErr(err)
	tokensCmd.AddCommand(countCommand)

	listModelsCmdInstance, err := NewListModelsCommand()
	cobra.CheckErr(err)
	listModelsCommand, err := pcmds.BuildCobraCommand(listModelsCmdInstance)
	cobra.CheckErr(err)
	tokensCmd.AddCommand(listModelsCommand)

	listEncodingsCmdInstance, err := NewListEncodingsCommand()
	cobra.CheckErr(err)
	listEncodingsCommand, err := pcmds.BuildCobraCommand(listEncodingsCmdInstance)
	cobra.CheckErr(err)
	tokensCmd.AddCommand(listEncodingsCommand)
}

func RegisterCommands(rootCmd *cobra.Command) {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Commands related to tokens",
	}
	RegisterTokenCommands(tokensCmd)
	rootCmd.AddCommand(tokensCmd)
}

// readInput reads the named file, or stdin for "-".
func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	return string(b), err
}
