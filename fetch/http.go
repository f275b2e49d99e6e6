// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fetch provides network [scene.Fetcher] implementations for
// retrieving level payloads from content servers, over HTTP and over
// WebSocket.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTP fetches level payloads with HTTP GET requests against a base
// URL. It is safe for concurrent use.
type HTTP struct {

	// Base is the content server base URL that level paths are
	// resolved against.
	Base string

	// Client is the HTTP client to use. It defaults to
	// [http.DefaultClient].
	Client *http.Client
}

// NewHTTP returns a new [HTTP] fetcher for the given base URL.
func NewHTTP(base string) *HTTP {
	return &HTTP{Base: base, Client: http.DefaultClient}
}

// Fetch retrieves the payload at the given level path relative to the
// base URL. Any status other than 200 OK is an error.
func (hf *HTTP) Fetch(ctx context.Context, path string) ([]byte, error) {
	u := path
	if !absolute(path) {
		var err error
		u, err = url.JoinPath(hf.Base, path)
		if err != nil {
			return nil, fmt.Errorf("fetch: bad level path %q: %w", path, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	cl := hf.Client
	if cl == nil {
		cl = http.DefaultClient
	}
	resp, err := cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: %s: %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// absolute reports whether the level path is a full URL of its own,
// passed through by [HTTP.Fetch] without base resolution.
func absolute(path string) bool {
	return strings.Contains(path, "://")
}
