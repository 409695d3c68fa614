package cmds

import (
	glazedcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/spf13/cobra"
)

// RegisterCommands adds the prompt commands to rootCmd.
func RegisterCommands(rootCmd *cobra.Command) {
	resolveCmd, err := NewResolveCommand()
	cobra.CheckErr(err)
	textCmd, err := NewTextCommand()
	cobra.CheckErr(err)
	versionsCmd, err := NewVersionsCommand()
	cobra.CheckErr(err)
	schemaCmd, err := NewSchemaCommand()
	cobra.CheckErr(err)

	for _, command := range []glazedcmds.Command{resolveCmd, textCmd, versionsCmd, schemaCmd} {
		cobraCmd, err := BuildCobraCommand(command)
		cobra.CheckErr(err)
		rootCmd.AddCommand(cobraCmd)
	}

	makeCmd, err := newMakeCommand()
	cobra.CheckErr(err)
	rootCmd.AddCommand(makeCmd)
}
