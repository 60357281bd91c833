/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timeexpr

import (
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"
)

var numberFormats = [...]string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC822,
	time.RFC822Z,
	"2006/01/02",
	"02/01/2006",
}

var letterFormats = [...]string{
	"Jan 02, 2006",
	time.RFC850,
	time.UnixDate,
	time.RFC1123,
	time.RFC1123Z,
	time.Stamp,
}

// ParseVagueDateTime tries a fixed table of timestamp layouts, split by
// whether the input leads with a digit or a letter. Formats are ordered
// most-specific first so that a full RFC3339 string never half-matches a
// date-only layout.
func ParseVagueDateTime(some string) (time.Time, error) {
	first, _ := utf8.DecodeRuneInString(some)
	var found time.Time

	switch {
	case unicode.IsDigit(first):
		for _, theFmt := range numberFormats {
			tm, err := time.Parse(theFmt, some)
			if err == nil {
				found = tm
				break
			}
		}
	default:
		for _, theFmt := range letterFormats {
			tm, err := time.Parse(theFmt, some)
			if err == nil {
				found = tm
				break
			}
		}
	}

	if found.IsZero() {
		return found, errors.New(fmt.Sprintf("Specified time '%s' did not match a known timestamp", some))
	}

	return found, nil
}
