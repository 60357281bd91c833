/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sift

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/dburkart/sift/pkg/proto"
	"github.com/dburkart/sift/pkg/schema"
)

// A RemoteClient talks to a sift server's HTTP API.
type RemoteClient struct {
	target proto.ConnectionString
	http   *http.Client
}

func newRemoteClient(target proto.ConnectionString) *RemoteClient {
	return &RemoteClient{
		target: target,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (client *RemoteClient) Close() error {
	client.http.CloseIdleConnections()
	return nil
}

func (client *RemoteClient) url(path string) string {
	return fmt.Sprintf("http://%s%s", client.target.Address, path)
}

func (client *RemoteClient) post(ctx context.Context, path string, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "unable to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, client.url(path), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "unable to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := client.http.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "unable to reach server")
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		var errResp proto.ErrResponse
		if err := json.NewDecoder(httpResp.Body).Decode(&errResp); err != nil {
			return errors.Errorf("server returned status %d", httpResp.StatusCode)
		}
		return errors.New(errResp.Err)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return errors.Wrap(err, "unable to unmarshal response")
	}

	return nil
}

func (client *RemoteClient) Preview(ctx context.Context, req proto.QueryRequest) (proto.PreviewResponse, error) {
	var resp proto.PreviewResponse
	err := client.post(ctx, "/api/v1/preview", req, &resp)
	return resp, err
}

func (client *RemoteClient) Query(ctx context.Context, req proto.QueryRequest) (proto.QueryResponse, error) {
	var resp proto.QueryResponse
	err := client.post(ctx, "/api/v1/query", req, &resp)
	return resp, err
}

func (client *RemoteClient) TimeColumns(ctx context.Context, table string) ([]schema.Column, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, client.url("/api/v1/columns?table="+url.QueryEscape(table)), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build request")
	}

	httpResp, err := client.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "unable to reach server")
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("server returned status %d", httpResp.StatusCode)
	}

	var resp proto.ColumnsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal column response")
	}

	cols := make([]schema.Column, 0, len(resp.Columns))
	for _, c := range resp.Columns {
		cols = append(cols, schema.Column{Name: c.Name, Type: c.Type})
	}
	return cols, nil
}

// Tables is not exposed over the HTTP API yet; remote consoles complete
// from history only.
func (client *RemoteClient) Tables(context.Context) ([]string, error) {
	return nil, nil
}
