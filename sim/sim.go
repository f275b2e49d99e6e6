// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim provides deterministic in-memory mesh, fetcher, and
// decoder collaborators, for package tests and for offline session
// simulation in the lodstream command.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cogentcore.org/core/math32"
	"github.com/lodstream/lodstream/scene"
)

// Mesh is an in-memory renderable instance with a fixed world
// bounding box.
type Mesh struct {
	mu      sync.Mutex
	name    string
	bbox    math32.Box3
	visible bool
}

// NewMesh returns a new [Mesh] with the given name and world bounds.
// It starts hidden, like a freshly instantiated renderable.
func NewMesh(name string, bbox math32.Box3) *Mesh {
	return &Mesh{name: name, bbox: bbox}
}

func (ms *Mesh) Name() string {
	return ms.name
}

func (ms *Mesh) BBox() math32.Box3 {
	return ms.bbox
}

func (ms *Mesh) SetVisible(vis bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.visible = vis
}

func (ms *Mesh) Visible() bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.visible
}

// Fetcher serves synthetic payloads of configured sizes, with optional
// failure injection and simulated transfer time.
type Fetcher struct {
	// Sizes maps level paths to payload sizes in bytes.
	Sizes map[string]int64

	// BytesPerSecond simulates transfer time when positive.
	BytesPerSecond float32

	// Fail maps level paths to injected fetch errors.
	Fail map[string]error

	mu      sync.Mutex
	fetched []string
}

// Fetch returns a payload of the configured size for path, after the
// simulated transfer time if one is configured.
func (sf *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := sf.Fail[path]; err != nil {
		return nil, err
	}
	sz, ok := sf.Sizes[path]
	if !ok {
		return nil, fmt.Errorf("sim: no payload configured for %q", path)
	}
	if sf.BytesPerSecond > 0 {
		delay := time.Duration(float64(sz) / float64(sf.BytesPerSecond) * float64(time.Second))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	sf.mu.Lock()
	sf.fetched = append(sf.fetched, path)
	sf.mu.Unlock()
	return make([]byte, sz), nil
}

// Fetched returns the paths fetched so far, in completion order.
func (sf *Fetcher) Fetched() []string {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return append([]string{}, sf.fetched...)
}

// Decoder instantiates [Mesh] values with the configured local bounds
// run through the object transform.
type Decoder struct {
	// Bounds is the local bounding box given to every decoded mesh.
	// The zero value decodes as a unit cube around the origin.
	Bounds math32.Box3

	// Err, if set, is returned from every decode.
	Err error

	mu      sync.Mutex
	decoded int
}

// Decode returns a new hidden [Mesh] positioned per transform.
func (sd *Decoder) Decode(data []byte, transform *math32.Matrix4) (scene.Mesh, error) {
	if sd.Err != nil {
		return nil, sd.Err
	}
	bb := sd.Bounds
	if bb.Min == bb.Max {
		bb = math32.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)
	}
	sd.mu.Lock()
	sd.decoded++
	n := sd.decoded
	sd.mu.Unlock()
	return NewMesh(fmt.Sprintf("sim-mesh-%d", n), bb.MulMatrix4(transform)), nil
}

// FetcherFor returns a [Fetcher] preloaded with the payload sizes of
// every level in the manifest.
func FetcherFor(mf *scene.Manifest) *Fetcher {
	sf := &Fetcher{Sizes: map[string]int64{}}
	for _, oi := range mf.Objects {
		for _, li := range oi.Levels {
			sf.Sizes[li.Path] = li.Size
		}
	}
	return sf
}
