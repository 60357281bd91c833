/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sift

import (
	"fmt"
	"os"

	"github.com/dburkart/sift/cmd/sift/console"
	"github.com/dburkart/sift/cmd/sift/query"
	"github.com/dburkart/sift/cmd/sift/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "sift",
		Short: "Sift is a query console with automatic time filtering",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		Version: Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("host", "H", "./sift.db", "Database file or sift:// URL of a server")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the sift config file (default ./config.toml)")

	// Bind viper config to the root flags
	viper.BindPFlag("sift.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("sift.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("sift.host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("sift version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	server.Command.Version = rootCmd.Version
	console.Command.Version = rootCmd.Version
	query.Command.Version = rootCmd.Version
	rootCmd.AddCommand(server.Command)
	rootCmd.AddCommand(console.Command)
	rootCmd.AddCommand(query.Command)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
