/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sift

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func initConfig(configFile string) {
	log := viper.Get("logger").(zerolog.Logger)

	// config Read
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath("/etc/sift")
	viper.AddConfigPath("/usr/local/etc/sift")
	viper.AddConfigPath("$HOME/.sift")
	viper.AddConfigPath(".")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Debug().Msg("No config file found, using defaults as a base")
	} else if err != nil {
		log.Error().Msg("Error loading config file")
	}

	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config from file")

	filterConfigs := viper.GetStringMap("timefilter")
	tables := []string{}

	// Range over the timefilter blocks to collect per-table overrides.
	// Keys set directly under [timefilter] apply to every table.
	for k, v := range filterConfigs {
		if t := reflect.ValueOf(v); t.Kind() == reflect.Map {
			tables = append(tables, k)
			for fk, fv := range v.(map[string]interface{}) {
				log.Trace().Msgf("timefilter.%s.%s = %v", k, fk, fv)
				viper.Set(fmt.Sprintf("timefilter.%s.%s", k, fk), fv)
			}
		} else {
			log.Trace().Msgf("timefilter.default.%s = %v", k, v)
			viper.Set(fmt.Sprintf("timefilter.default.%s", k), v)
		}
	}

	viper.Set("timefilter", "")
	viper.Set("timefilter.tables", tables)
}

func initLogLevel() {
	level := viper.GetInt("sift.verbose")
	switch clamp(2, level) {
	case 2:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func initLogging() {
	var writer io.Writer

	writer = os.Stderr
	if viper.GetBool("sift.local") {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()

	viper.Set("logger", logger)
}

func traceConfig() {
	log := viper.Get("logger").(zerolog.Logger)

	for _, v := range viper.AllKeys() {
		if v == "logger" {
			continue
		}
		log.Trace().Msgf("%s=%v", v, viper.Get(v))
	}
}

func clamp(clamp, a int) int {
	if a >= clamp {
		return clamp
	}
	return a
}
