// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/math32"
)

// LevelInfo is the static catalog metadata for one level of detail.
type LevelInfo struct {
	// Path is the file reference to fetch the level from.
	Path string

	// Size is the compressed size in bytes.
	Size int64

	// Distortion is the distortion index in [0,1]; the level's quality
	// score is 1 - Distortion.
	Distortion float32
}

// ObjectInfo is the static catalog metadata for one streamable object.
type ObjectInfo struct {
	// Name is the stable object identity, unique within a manifest.
	Name string

	// Position is the fixed world position.
	Position math32.Vector3

	// Rotation is the fixed rotation as Euler angles, in degrees.
	Rotation math32.Vector3

	// Scale is the fixed uniform scale; 0 means 1.
	Scale float32

	// SurfaceArea is the true surface area of the full-quality mesh.
	SurfaceArea float32

	// Bounds is the local bounding box of the full-quality mesh.
	Bounds math32.Box3

	// Levels are the available levels of detail, ordered by
	// increasing size and quality.
	Levels []LevelInfo
}

// Manifest is the static catalog descriptor enumerating every
// streamable object of a scene. It is read once at session start and
// never rewritten.
type Manifest struct {
	Objects []ObjectInfo
}

// OpenManifest reads and validates a [Manifest] from the given
// JSON file.
func OpenManifest(filename string) (*Manifest, error) {
	mf := &Manifest{}
	if err := jsonx.Open(mf, filename); err != nil {
		return nil, err
	}
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	return mf, nil
}

// Validate checks that object names are unique and every object has at
// least one level with a positive size.
func (mf *Manifest) Validate() error {
	names := map[string]bool{}
	for i := range mf.Objects {
		oi := &mf.Objects[i]
		if oi.Name == "" {
			return fmt.Errorf("scene: manifest object %d has no name", i)
		}
		if names[oi.Name] {
			return fmt.Errorf("scene: manifest has duplicate object name %q", oi.Name)
		}
		names[oi.Name] = true
		if len(oi.Levels) == 0 {
			return fmt.Errorf("scene: manifest object %q has no levels", oi.Name)
		}
		for j, li := range oi.Levels {
			if li.Size <= 0 {
				return fmt.Errorf("scene: manifest object %q level %d has size %d", oi.Name, j, li.Size)
			}
		}
	}
	return nil
}
