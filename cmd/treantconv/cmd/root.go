package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/treantkit/treantconv/pkg/convert"
	"github.com/treantkit/treantconv/pkg/dlogger"
	"github.com/treantkit/treantconv/pkg/errors"
	"github.com/treantkit/treantconv/pkg/model"
)

// rootCmd is the conversion command itself: there is exactly one thing
// this tool does, so it does not hide it behind a subcommand.
var rootCmd = &cobra.Command{
	Use:   "treantconv STATEFILE [STATEFILE...]",
	Short: "treantconv converts deprecated HDF5 statefiles to JSON",
	Long: `treantconv converts Treant, Group and Sim statefiles from the deprecated
HDF5 format to the current JSON format.

Each argument is converted independently: the legacy container is read and an
equivalent JSON statefile is written next to it, replacing the legacy extension
with .json. Inputs are never modified. Files that fail to convert are reported
and skipped; the exit status is non-zero if any file failed.
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		osExit(runConvert(args))
	},
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	addLogLevelFlag(rootCmd)
}

// runConvert converts every argument in order and returns the process
// exit code.
func runConvert(args []string) int {
	logger, err := dlogger.GetLogger(logLevel())
	if err != nil {
		wrapFatalln("set log level", err)
		return 1
	}
	converter := convert.New(convert.WithLogger(logger))

	failed := 0
	for _, statefile := range args {
		out, err := converter.Convert(context.Background(), statefile)
		if err != nil {
			failed++
			infoLogger.Printf("%s: %s: %v", statefile, errorKind(err), err)
			continue
		}
		infoLogger.Printf("converted %q -> %q", statefile, out)
	}
	if failed > 0 {
		infoLogger.Printf("%d of %d statefiles failed to convert", failed, len(args))
		return 1
	}
	return 0
}

// errorKind names the failure taxonomy bucket for user-facing reports.
func errorKind(err error) string {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return "not found"
	case errors.Is(err, model.ErrMalformedContainer):
		return "malformed container"
	case errors.Is(err, model.ErrWrite):
		return "write error"
	}
	return "error"
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("loglevel", dlogger.LogLevelInfo)
	if os.Getenv("TREANTCONV_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("TREANTCONV_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.treantconv")
		viper.SetConfigName("treantconv")
	}
	viper.SetEnvPrefix("treantconv")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
}
