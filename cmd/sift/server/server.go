/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"path/filepath"

	"github.com/dburkart/sift/pkg/server"
	"github.com/dburkart/sift/pkg/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "server",
	Short: "Serve a database over HTTP with automatic time filtering",

	Run: func(cmd *cobra.Command, args []string) {
		logger := viper.Get("logger").(zerolog.Logger)

		path := filepath.Clean(viper.GetString("sift.database"))
		db, err := store.Open(path)
		if err != nil {
			logger.Fatal().Err(err).Str("database", path).Msg("unable to open database")
		}
		defer db.Close()

		srv := server.New(
			logger,
			db,
			viper.GetInt("sift.port"),
			viper.GetInt("sift.prom-port"),
		)

		// Serve the query API
		go srv.ServeAPI()

		// Serve the metrics endpoint
		srv.ServeMetrics()
	},
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8001, "Port for the query API")
	Command.Flags().Int("prom-port", 2112, "Set the port for /metrics")
	Command.Flags().StringP("database", "d", "./sift.db", "Path to the database file")

	// Bind flags to viper
	viper.BindPFlag("sift.port", Command.Flags().Lookup("port"))
	viper.BindPFlag("sift.prom-port", Command.Flags().Lookup("prom-port"))
	viper.BindPFlag("sift.database", Command.Flags().Lookup("database"))
}
