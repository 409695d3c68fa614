package main

import (
	"os"
	"strings"

	"github.com/go-go-golems/promptver/cmd/promptver/cmds"
	"github.com/go-go-golems/promptver/cmd/promptver/cmds/tokens"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "promptver",
	Short: "promptver resolves versioned prompts and estimates their token cost",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// reinitialize the logger because we can now parse --log-level and co
		// from the command line flag
		initLogger()
	},
	SilenceUsage: true,
}

func initLogger() {
	err := InitLogger(&logConfig{
		Level:      effectiveLevel(viper.GetString("log-level"), viper.GetBool("verbose")),
		LogFile:    viper.GetString("log-file"),
		LogFormat:  viper.GetString("log-format"),
		WithCaller: viper.GetBool("with-caller"),
	})
	cobra.CheckErr(err)
}

// effectiveLevel raises level to debug when verbose is set, unless trace
// was asked for.
func effectiveLevel(level string, verbose bool) string {
	if verbose && level != "trace" {
		return "debug"
	}
	return level
}

// configFileFromArgs finds --config before cobra has parsed anything, so the
// config file can feed the flag defaults of every command.
func configFileFromArgs(args []string) string {
	configFile := ""
	for idx, arg := range args {
		if arg == "--config" {
			if len(args) > idx+1 {
				configFile = args[idx+1]
			}
		} else if strings.HasPrefix(arg, "--config=") {
			configFile = strings.TrimPrefix(arg, "--config=")
		}
	}
	return configFile
}

func initConfig(rootCmd *cobra.Command, configPath string) error {
	viper.SetEnvPrefix("promptver")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.promptver")

		xdgConfigPath, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(xdgConfigPath + "/promptver")
		}
	}

	err := viper.ReadInConfig()
	// a missing config file is fine, we run on flags and env alone
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok && err != nil {
		return err
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err = viper.BindPFlags(rootCmd.PersistentFlags())
	if err != nil {
		return err
	}

	initLogger()

	log.Debug().
		Str("config", viper.ConfigFileUsed()).
		Msg("Loaded configuration")

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("with-caller", false, "Log caller")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (json, text), defaults to text on a terminal")
	rootCmd.PersistentFlags().String("log-file", "", "Log file (default: stderr)")

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.promptver/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")

	err := initConfig(rootCmd, configFileFromArgs(os.Args))
	cobra.CheckErr(err)

	cmds.RegisterCommands(rootCmd)
	tokens.RegisterCommands(rootCmd)
}
