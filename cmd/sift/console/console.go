/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package console

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sift "github.com/dburkart/sift/api"
	"github.com/dburkart/sift/pkg/proto"
	"github.com/dburkart/sift/pkg/repl"
	"github.com/dburkart/sift/pkg/schema"
	"github.com/dburkart/sift/pkg/sqlfilter"
)

var log zerolog.Logger

var (
	Command = &cobra.Command{
		Use:   "console",
		Short: "Interactive console with a sticky time window",

		Run: func(cmd *cobra.Command, args []string) {
			log := viper.Get("logger").(zerolog.Logger)
			output := viper.GetString("sift.output")
			if len(filterStringSlice([]string{"csv", "text", "json"}, output)) != 1 {
				log.Fatal().Msg("unsupported output format")
			}

			host := viper.GetString("sift.host")
			target, err := proto.ParseConnectionString(host)
			if err != nil {
				log.Fatal().Err(err).Msg("error parsing URL")
			}

			client, err := sift.NewClient(host)
			if err != nil {
				log.Fatal().Err(err).Str("address", target.Address).Msg("unable to connect to server")
			}
			defer client.Close()

			readlinePrompt(client, output)
		},
	}
)

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).
		With().
		Timestamp().
		Caller().
		Logger()

	// Flags for this command
	Command.Flags().StringP("output", "o", "text", "Output format of results [csv, json, text]")

	// Bind flags to viper
	viper.BindPFlag("sift.output", Command.Flags().Lookup("output"))
}

// session is the sticky console state. Every SQL line inherits the
// current window and column until a directive changes them.
type session struct {
	column     string
	columnType string
	unit       string
	window     sqlfilter.Range
}

func newSession() session {
	s := session{
		column: viper.GetString("timefilter.default.column"),
		unit:   viper.GetString("timefilter.default.unit"),
		window: sqlfilter.Range{From: "now-24h", To: "now", Enabled: true},
	}
	if from := viper.GetString("timefilter.default.from"); from != "" {
		s.window.From = from
	}
	if to := viper.GetString("timefilter.default.to"); to != "" {
		s.window.To = to
	}
	return s
}

func (s *session) request(sql string) proto.QueryRequest {
	req := proto.QueryRequest{
		Query:      sql,
		Column:     s.column,
		ColumnType: s.columnType,
		Unit:       s.unit,
	}
	if s.window.Enabled {
		req.From = s.window.From
		req.To = s.window.To
	} else {
		req.Disabled = true
	}
	return req
}

func (s *session) describeWindow() string {
	if !s.window.Enabled {
		return "no time filter"
	}
	return fmt.Sprintf("%s .. %s", s.window.From, s.window.To)
}

// parseRangeArg accepts a preset label ("Last 7 days"), a from,to pair
// ("now-1d/d,now/d"), or "off".
func parseRangeArg(arg string) (sqlfilter.Range, error) {
	if strings.EqualFold(arg, "off") || strings.EqualFold(arg, "none") {
		return sqlfilter.NoFilter, nil
	}
	for _, p := range sqlfilter.Presets {
		if strings.EqualFold(p.Label, arg) {
			return p.Range, nil
		}
	}
	if from, to, ok := strings.Cut(arg, ","); ok {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from != "" && to != "" {
			return sqlfilter.Range{From: from, To: to, Enabled: true}, nil
		}
	}
	return sqlfilter.NoFilter, fmt.Errorf("unknown range %q", arg)
}

func listTables(c sift.Client) func(string) []string {
	tables, err := c.Tables(context.Background())
	if err != nil {
		return func(string) []string { return []string{} }
	}
	return func(line string) []string {
		fields := strings.Fields(line)
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[len(fields)-1]
		}
		return filterStringSlice(tables, prefix)
	}
}

func listTimeColumns(c sift.Client) func(string) []string {
	ctx := context.Background()
	tables, err := c.Tables(ctx)
	if err != nil {
		return func(string) []string { return []string{} }
	}
	seen := map[string]bool{}
	names := []string{}
	for _, t := range tables {
		cols, err := c.TimeColumns(ctx, t)
		if err != nil {
			continue
		}
		for _, col := range cols {
			if !seen[col.Name] {
				seen[col.Name] = true
				names = append(names, col.Name)
			}
		}
	}
	return func(line string) []string {
		fields := strings.Fields(line)
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[len(fields)-1]
		}
		return filterStringSlice(names, prefix)
	}
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

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func makePresetOptions() []readline.PrefixCompleterInterface {
	ret := []readline.PrefixCompleterInterface{}
	for _, p := range sqlfilter.Presets {
		ret = append(ret, readline.PcItem(p.Label))
	}
	ret = append(ret, readline.PcItem("off"))
	return ret
}

func makeUnitOptions() []readline.PrefixCompleterInterface {
	ret := []readline.PrefixCompleterInterface{}
	for _, u := range []string{"s", "ms", "us", "ns"} {
		ret = append(ret, readline.PcItem(u))
	}
	return ret
}

func readlinePrompt(c sift.Client, output string) {
	// Configure the completer
	tableItem := readline.PcItemDynamic(listTables(c))
	columnItem := readline.PcItemDynamic(listTimeColumns(c))

	completer := readline.NewPrefixCompleter(
		readline.PcItem(`\range`, makePresetOptions()...),
		readline.PcItem(`\column`, columnItem),
		readline.PcItem(`\unit`, makeUnitOptions()...),
		readline.PcItem(`\preview`),
		readline.PcItem(`\columns`, tableItem),
		readline.PcItem(`\help`),
		readline.PcItem(`\exit`),
		readline.PcItem("select", readline.PcItem("* from", tableItem)),
	)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	sess := newSession()
	ctx := context.Background()

	// Configure output writer
	writer := repl.NewOutputWriter(os.Stdout, output)

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}
		line := strings.TrimSpace(ln.Line)
		if line == "" {
			continue
		}

		d := repl.ParseDirective(line)
		switch d.Kind {
		case repl.DirectiveHelp:
			fmt.Println("usage:")
			fmt.Println(completer.Tree("    "))
			continue
		case repl.DirectiveExit:
			os.Exit(0)
		case repl.DirectiveRange:
			if d.Arg == "" {
				fmt.Println(sess.describeWindow())
				continue
			}
			window, err := parseRangeArg(d.Arg)
			if err != nil {
				log.Error().Err(err).Send()
				continue
			}
			sess.window = window
			fmt.Println(sess.describeWindow())
		case repl.DirectiveColumn:
			if d.Arg == "" {
				fmt.Println(sess.column)
				continue
			}
			name, colType, _ := strings.Cut(d.Arg, " ")
			sess.column = name
			sess.columnType = strings.TrimSpace(colType)
		case repl.DirectiveUnit:
			sess.unit = d.Arg
		case repl.DirectivePreview:
			if d.Arg == "" {
				log.Error().Msg("\\preview needs a query")
				continue
			}
			resp, err := c.Preview(ctx, sess.request(d.Arg))
			if err != nil {
				log.Error().Err(err).Send()
				continue
			}
			writer.Write(resp)
		case repl.DirectiveColumns:
			if d.Arg == "" {
				log.Error().Msg("\\columns needs a table name")
				continue
			}
			writer.Write(columnsResponse(ctx, c, d.Arg))
		case repl.DirectiveUnknown:
			log.Error().Msgf("unknown directive \\%s", d.Arg)
		case repl.DirectiveSQL:
			resp, err := c.Query(ctx, sess.request(line))
			if err != nil {
				log.Error().Err(err).Send()
				continue
			}
			writer.Write(resp)
			if output == "text" {
				fmt.Printf("%s rows in %v\n",
					humanize.Comma(int64(len(resp.Rows))),
					time.Duration(resp.ElapsedMS)*time.Millisecond)
			}
		}
		fmt.Println()
	}
	rl.Clean()
}

func columnsResponse(ctx context.Context, c sift.Client, table string) proto.ColumnsResponse {
	cols, err := c.TimeColumns(ctx, table)
	if err != nil {
		log.Error().Err(err).Send()
		return proto.ColumnsResponse{}
	}
	resp := proto.ColumnsResponse{}
	for _, col := range cols {
		resp.Columns = append(resp.Columns, proto.ColumnInfo{
			Name:           col.Name,
			Type:           col.Type,
			Representation: schema.Resolve(col).String(),
		})
	}
	return resp
}
