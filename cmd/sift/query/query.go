/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package query

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sift "github.com/dburkart/sift/api"
	"github.com/dburkart/sift/pkg/proto"
	"github.com/dburkart/sift/pkg/repl"
)

var Command = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run a single query with the time filter applied",
	Long: `Run a single query against the configured host. The SQL is taken from
the arguments, or from stdin when no arguments are given. The window set
by --from and --to is spliced into the query as a predicate on the time
column before execution.`,

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)
		output := viper.GetString("sift.output")
		if len(filterStringSlice([]string{"csv", "text", "json"}, output)) != 1 {
			log.Fatal().Msg("unsupported output format")
		}

		sql := strings.TrimSpace(strings.Join(args, " "))
		if sql == "" {
			in, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatal().Err(err).Msg("error reading query from stdin")
			}
			sql = strings.TrimSpace(string(in))
		}
		if sql == "" {
			log.Fatal().Msg("no query given")
		}

		host := viper.GetString("sift.host")
		client, err := sift.NewClient(host)
		if err != nil {
			log.Fatal().Err(err).Str("host", host).Msg("unable to connect")
		}
		defer client.Close()

		req := buildRequest(sql)
		writer := repl.NewOutputWriter(os.Stdout, output)
		ctx := context.Background()

		if viper.GetBool("sift.preview") {
			resp, err := client.Preview(ctx, req)
			if err != nil {
				log.Fatal().Err(err).Msg("preview failed")
			}
			fmt.Println(resp.Query)
			return
		}

		resp, err := client.Query(ctx, req)
		if err != nil {
			log.Fatal().Err(err).Msg("query failed")
		}

		writer.Write(resp)
		if output == "text" {
			fmt.Printf("%s rows in %v\n",
				humanize.Comma(int64(len(resp.Rows))),
				time.Duration(resp.ElapsedMS)*time.Millisecond)
		}
	},
}

// buildRequest folds the window and column flags into a request, falling
// back to [timefilter] config defaults for anything not set on the
// command line.
func buildRequest(sql string) proto.QueryRequest {
	req := proto.QueryRequest{
		Query:      sql,
		Column:     viper.GetString("sift.column"),
		ColumnType: viper.GetString("sift.column-type"),
		Unit:       viper.GetString("sift.unit"),
		From:       viper.GetString("sift.from"),
		To:         viper.GetString("sift.to"),
		Disabled:   viper.GetBool("sift.no-time-filter"),
	}

	if req.Column == "" {
		req.Column = viper.GetString("timefilter.default.column")
	}
	if req.Unit == "" {
		req.Unit = viper.GetString("timefilter.default.unit")
	}

	return req
}

func filterStringSlice(s []string, prefix string) []string {
	retList := []string{}
	for i := range s {
		if strings.HasPrefix(s[i], prefix) {
			retList = append(retList, s[i])
		}
	}
	return retList
}

func init() {
	// Flags for this command
	Command.Flags().String("from", "now-24h", "Start of the time window")
	Command.Flags().String("to", "now", "End of the time window")
	Command.Flags().String("column", "", "Time column to filter on")
	Command.Flags().String("column-type", "", "Declared type of the time column")
	Command.Flags().String("unit", "", "Epoch unit of the time column [s, ms, us, ns]")
	Command.Flags().Bool("no-time-filter", false, "Run the query without a time filter")
	Command.Flags().Bool("preview", false, "Print the processed query instead of running it")
	Command.Flags().StringP("output", "o", "text", "Output format of results [csv, json, text]")

	// Bind flags to viper
	viper.BindPFlag("sift.from", Command.Flags().Lookup("from"))
	viper.BindPFlag("sift.to", Command.Flags().Lookup("to"))
	viper.BindPFlag("sift.column", Command.Flags().Lookup("column"))
	viper.BindPFlag("sift.column-type", Command.Flags().Lookup("column-type"))
	viper.BindPFlag("sift.unit", Command.Flags().Lookup("unit"))
	viper.BindPFlag("sift.no-time-filter", Command.Flags().Lookup("no-time-filter"))
	viper.BindPFlag("sift.preview", Command.Flags().Lookup("preview"))
	viper.BindPFlag("sift.output", Command.Flags().Lookup("output"))
}
