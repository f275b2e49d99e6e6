// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene tracks the streamable objects of a session: which
// levels of detail are requested and loaded per object, and which
// objects fall inside the viewpoint's view frustum. The rendering
// engine, transport, and codec are consumed through the narrow
// [Mesh], [Fetcher], and [Decoder] interfaces.
package scene

import (
	"context"

	"cogentcore.org/core/math32"
)

// Mesh is the capability the rendering collaborator exposes for one
// displayable instance of a decoded level.
type Mesh interface {

	// Name returns the renderable instance name.
	Name() string

	// BBox returns the world-space bounding box of the instance.
	BBox() math32.Box3

	// SetVisible shows or hides the instance. Loaded levels below the
	// displayed one are kept resident but hidden.
	SetVisible(vis bool)

	// Visible reports whether the instance is currently shown.
	Visible() bool
}

// Fetcher retrieves the raw bytes of one level by its path reference.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Decoder decodes compressed level bytes into a renderable instance,
// positioned per the given container transform.
type Decoder interface {
	Decode(data []byte, transform *math32.Matrix4) (Mesh, error)
}
