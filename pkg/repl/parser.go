/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import "strings"

// DirectiveKind is what a console input line asks for. Anything that isn't
// a backslash directive is a SQL statement passed through untouched.
type DirectiveKind int

const (
	DirectiveSQL DirectiveKind = iota
	DirectiveRange
	DirectiveColumn
	DirectiveUnit
	DirectivePreview
	DirectiveColumns
	DirectiveHelp
	DirectiveExit
	DirectiveUnknown
)

type Directive struct {
	Kind DirectiveKind
	// Arg is the directive argument verbatim: a preset label or from,to
	// pair for \range, a column name for \column, and so on.
	Arg string
}

// ParseDirective splits console input into directives and SQL.
//
// This function assumes there is no '\n'.
func ParseDirective(line string) Directive {
	line = strings.TrimSpace(line)

	if !strings.HasPrefix(line, `\`) {
		return Directive{Kind: DirectiveSQL, Arg: line}
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "range":
		return Directive{Kind: DirectiveRange, Arg: arg}
	case "column":
		return Directive{Kind: DirectiveColumn, Arg: arg}
	case "unit":
		return Directive{Kind: DirectiveUnit, Arg: arg}
	case "preview":
		return Directive{Kind: DirectivePreview, Arg: arg}
	case "columns":
		return Directive{Kind: DirectiveColumns, Arg: arg}
	case "help", "?":
		return Directive{Kind: DirectiveHelp}
	case "exit", "quit", "q":
		return Directive{Kind: DirectiveExit}
	}

	return Directive{Kind: DirectiveUnknown, Arg: cmd}
}
