// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/google/uuid"
	"github.com/lodstream/lodstream/throughput"
	"github.com/lodstream/lodstream/viewpoint"
)

var (
	// ErrNotInitialized is returned when an object is used before its
	// one-time setup completed.
	ErrNotInitialized = errors.New("scene: object not initialized")

	// ErrLevelOutOfRange is returned for a level index outside
	// [0, NumLevels). It signals a scheduling logic bug and is never
	// silently clamped.
	ErrLevelOutOfRange = errors.New("scene: level index out of range")

	// ErrAlreadyRequested is returned when a level is fetched a second
	// time. Duplicate fetches signal a scheduling logic bug and are
	// rejected without performing any I/O.
	ErrAlreadyRequested = errors.New("scene: level already requested")

	// ErrFetch wraps network failures from the [Fetcher].
	ErrFetch = errors.New("scene: level fetch failed")

	// ErrDecode wraps codec failures from the [Decoder].
	ErrDecode = errors.New("scene: level decode failed")
)

// Level describes one level of detail of an [Object].
type Level struct {
	// Path is the file reference to fetch this level from.
	Path string

	// Size is the compressed size in bytes.
	Size int64

	// Quality is the perceptual quality score in [0,1], where 1 is
	// perceptually lossless. It is derived as 1 - distortion index.
	Quality float32

	// Requested is set exactly once, when a fetch of this level is
	// issued, and never cleared: a failed fetch leaves the level
	// requested forever (no automatic retry).
	Requested bool

	// Loaded is set when the level has been fetched, decoded, and
	// instantiated.
	Loaded bool
}

// Object is one streamable mesh: an ordered sequence of levels of
// detail plus the per-session load state. Objects are created once
// from static catalog metadata at scene load, mutated only by
// [Object.FetchLevel], and never destroyed during a session.
type Object struct {
	// Name is the stable object identity.
	Name string

	// Pose is the object's spatial transform, fixed at construction
	// and never mutated after.
	Pose viewpoint.Pose

	// Bounds is the object's local bounding box from catalog metadata.
	Bounds math32.Box3

	// SurfaceArea is the true surface area of the full-quality mesh,
	// used by the Surface utility metric.
	SurfaceArea float32

	// Levels are the available levels of detail, ordered by
	// increasing size and quality.
	Levels []Level

	// Current is the highest level currently displayed, -1 before any
	// import. It is monotonically non-decreasing over the object's
	// lifetime.
	Current int

	mu      sync.Mutex
	meshes  []Mesh
	est     *throughput.Estimator
	fetcher Fetcher
	decoder Decoder
	inited  bool
}

// NewObject returns a new [Object] built from the given catalog
// metadata, recording its throughput into est and fetching and
// decoding through the given collaborators.
func NewObject(info *ObjectInfo, est *throughput.Estimator, fetcher Fetcher, decoder Decoder) *Object {
	ob := &Object{
		Name:        info.Name,
		Bounds:      info.Bounds,
		SurfaceArea: info.SurfaceArea,
		Current:     -1,
		est:         est,
		fetcher:     fetcher,
		decoder:     decoder,
	}
	ob.Pose.Defaults()
	ob.Pose.Pos = info.Position
	ob.Pose.SetEulerRotation(info.Rotation.X, info.Rotation.Y, info.Rotation.Z)
	if info.Scale > 0 {
		ob.Pose.Scale.SetScalar(info.Scale)
	}
	ob.Pose.UpdateMatrix()
	ob.Levels = make([]Level, len(info.Levels))
	for i, li := range info.Levels {
		ob.Levels[i] = Level{
			Path:    li.Path,
			Size:    li.Size,
			Quality: math32.Clamp(1-li.Distortion, 0, 1),
		}
	}
	ob.meshes = make([]Mesh, len(info.Levels))
	ob.inited = true
	return ob
}

// NumLevels returns the number of levels of detail.
func (ob *Object) NumLevels() int {
	return len(ob.Levels)
}

// CurrentLevel returns the highest level currently displayed,
// -1 before any import.
func (ob *Object) CurrentLevel() int {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	return ob.Current
}

// NextLevel returns the lowest level index that has not been requested
// yet, or -1 if every level has been requested.
func (ob *Object) NextLevel() int {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	for i := range ob.Levels {
		if !ob.Levels[i].Requested {
			return i
		}
	}
	return -1
}

// LevelSize returns the compressed byte size of the given level,
// or 0 if the index is out of range.
func (ob *Object) LevelSize(level int) int64 {
	if level < 0 || level >= len(ob.Levels) {
		return 0
	}
	return ob.Levels[level].Size
}

// Quality returns the quality score of the given level,
// or 0 if the index is out of range.
func (ob *Object) Quality(level int) float32 {
	if level < 0 || level >= len(ob.Levels) {
		return 0
	}
	return ob.Levels[level].Quality
}

// Displayed returns the currently displayed mesh instance,
// or nil if no level has been loaded yet.
func (ob *Object) Displayed() Mesh {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	if ob.Current < 0 {
		return nil
	}
	return ob.meshes[ob.Current]
}

// AllLoaded reports whether every level of the object has loaded.
func (ob *Object) AllLoaded() bool {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	for i := range ob.Levels {
		if !ob.Levels[i].Loaded {
			return false
		}
	}
	return true
}

// WorldBounds returns the object's bounding box in world coordinates:
// the displayed mesh bounds when a level is loaded, otherwise the
// catalog bounds through the object transform.
func (ob *Object) WorldBounds() math32.Box3 {
	if dm := ob.Displayed(); dm != nil {
		return dm.BBox()
	}
	return ob.Bounds.MulMatrix4(&ob.Pose.Matrix)
}

// FetchLevel fetches and decodes the given level of detail,
// instantiates its renderable positioned per the object's fixed
// transform, updates the displayed level, records the observed
// bandwidth and decode rate, and returns the new renderable.
//
// It fails with [ErrLevelOutOfRange], [ErrAlreadyRequested], or
// [ErrNotInitialized] before any I/O, and with a wrapped [ErrFetch] or
// [ErrDecode] on transport or codec failure. A failed level stays
// requested for the rest of the session: there is no automatic retry.
func (ob *Object) FetchLevel(ctx context.Context, level int) (Mesh, error) {
	ob.mu.Lock()
	if !ob.inited {
		ob.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, ob.Name)
	}
	if level < 0 || level >= len(ob.Levels) {
		ob.mu.Unlock()
		return nil, fmt.Errorf("%w: %s level %d of %d", ErrLevelOutOfRange, ob.Name, level, len(ob.Levels))
	}
	lv := &ob.Levels[level]
	if lv.Requested || lv.Loaded {
		ob.mu.Unlock()
		return nil, fmt.Errorf("%w: %s level %d", ErrAlreadyRequested, ob.Name, level)
	}
	lv.Requested = true
	path := lv.Path
	ob.mu.Unlock()

	rid := uuid.New()
	start := time.Now()
	data, err := ob.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s level %d: %w", ErrFetch, ob.Name, level, err)
	}
	fetchSecs := float32(time.Since(start).Seconds())

	start = time.Now()
	mesh, err := ob.decoder.Decode(data, &ob.Pose.Matrix)
	if err != nil {
		return nil, fmt.Errorf("%w: %s level %d: %w", ErrDecode, ob.Name, level, err)
	}
	decodeSecs := float32(time.Since(start).Seconds())

	ob.mu.Lock()
	lv.Loaded = true
	ob.meshes[level] = mesh
	if level > ob.Current {
		if ob.Current >= 0 {
			ob.meshes[ob.Current].SetVisible(false)
		}
		mesh.SetVisible(true)
		ob.Current = level
	} else {
		// a lower level finishing after a higher one stays resident
		// but hidden
		mesh.SetVisible(false)
	}
	ob.mu.Unlock()

	if fetchSecs > 0 {
		ob.est.RecordBandwidth(float32(len(data)) / fetchSecs)
	}
	if decodeSecs > 0 {
		ob.est.RecordDecodeRate(float32(len(data)) / decodeSecs)
	}
	slog.Debug("level loaded", "object", ob.Name, "level", level,
		"bytes", len(data), "request", rid)
	return mesh, nil
}
