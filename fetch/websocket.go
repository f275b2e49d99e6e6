// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// WS fetches level payloads over a persistent WebSocket connection,
// avoiding per-level request setup cost. Each request is a text frame
// carrying the level path; the server answers with one binary frame
// carrying the payload, or a text frame carrying an error message.
type WS struct {
	// mu serializes request/response pairs: the connection carries one
	// exchange at a time.
	mu   sync.Mutex
	conn *websocket.Conn
}

// Dial connects to the given WebSocket content server URL and returns
// a [WS] fetcher.
func Dial(url string) (*WS, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &WS{conn: conn}, nil
}

// Fetch requests the payload at the given level path. Cancelling the
// context bounds the wait for the server's reply.
func (wf *WS) Fetch(ctx context.Context, path string) ([]byte, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if dl, ok := ctx.Deadline(); ok {
		wf.conn.SetReadDeadline(dl)
		wf.conn.SetWriteDeadline(dl)
	}
	if err := wf.conn.WriteMessage(websocket.TextMessage, []byte(path)); err != nil {
		return nil, fmt.Errorf("fetch: request %q: %w", path, err)
	}
	typ, msg, err := wf.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("fetch: response for %q: %w", path, err)
	}
	if typ != websocket.BinaryMessage {
		return nil, fmt.Errorf("fetch: %q: server error: %s", path, msg)
	}
	return msg, nil
}

// Close cleanly closes the connection.
func (wf *WS) Close() error {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	err := wf.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if cerr := wf.conn.Close(); err == nil {
		err = cerr
	}
	return err
}
