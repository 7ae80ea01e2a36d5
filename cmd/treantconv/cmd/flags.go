package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/treantkit/treantconv/pkg/dlogger"
)

type flagsT struct {
	root struct {
		logLevel string
	}
}

var params flagsT

func addLogLevelFlag(cmd *cobra.Command) string {
	const flag = "loglevel"
	cmd.PersistentFlags().StringVar(&params.root.logLevel, flag, "",
		"log level (debug, info, warn, error, none)")
	return flag
}

// logLevel resolves the effective log level: flag, then config/env,
// then the info default.
func logLevel() string {
	if params.root.logLevel != "" {
		return params.root.logLevel
	}
	if config != nil && config.LogLevel != "" {
		return config.LogLevel
	}
	if lvl := viper.GetString("loglevel"); lvl != "" {
		return lvl
	}
	return dlogger.LogLevelInfo
}
