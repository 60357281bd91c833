/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"errors"
	"fmt"
	"net/url"
)

var Protocol = "sift"

type ConnectionString struct {
	Local   bool
	Address string
	Path    string
}

// ParseConnectionString takes a connection string and parses it into the
// parts the application needs to reach a database: either a local database
// file opened in-process, or a sift server spoken to over HTTP. This
// function will always parse, even horribly malformed connection strings.
// It only returns an error for an unrecognized scheme.
//
// Formats:
//
//	./path/to/local.db
//	file://./path/to/local.db
//	sift://<host:port>
//	http://<host:port>
func ParseConnectionString(connStr string) (ConnectionString, error) {
	ret := ConnectionString{
		Local:   true,
		Address: "local",
	}

	if connStr == "" {
		connStr = "./sift.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return ConnectionString{}, err
	}

	// Handle the local case
	if u.Scheme == "" || u.Scheme == "file" {
		ret.Path = u.Path
		if ret.Path == "" {
			ret.Path = u.Opaque
		}
		return ret, nil
	}

	switch u.Scheme {
	case Protocol, "http", "https":
		ret.Local = false
		ret.Address = u.Host
		return ret, nil
	}

	return ConnectionString{}, errors.New(fmt.Sprintf("unrecognized scheme: %s", u.Scheme))
}
