// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"sync/atomic"

	"cogentcore.org/core/base/errors"
	"github.com/lodstream/lodstream/throughput"
	"github.com/lodstream/lodstream/viewpoint"
)

// ErrNoLevelLoaded is returned by the visibility partition for an
// object with no loaded level: the frustum test requires a displayed
// mesh.
var ErrNoLevelLoaded = errors.New("scene: object has no loaded level for frustum test")

// Catalog owns the collection of streamable objects of one session and
// partitions them against a viewpoint's view frustum. It also owns the
// session's sole concurrency guard: at most one scheduling pass may be
// in flight at a time.
type Catalog struct {
	// Objects are the session's streamable objects, in manifest order.
	Objects []*Object

	names    map[string]*Object
	inFlight atomic.Bool
}

// NewCatalog builds a [Catalog] from the given manifest, with all
// objects recording throughput into est and fetching and decoding
// through the given collaborators.
func NewCatalog(mf *Manifest, est *throughput.Estimator, fetcher Fetcher, decoder Decoder) *Catalog {
	ct := &Catalog{names: make(map[string]*Object, len(mf.Objects))}
	for i := range mf.Objects {
		ob := NewObject(&mf.Objects[i], est, fetcher, decoder)
		ct.Objects = append(ct.Objects, ob)
		ct.names[ob.Name] = ob
	}
	return ct
}

// ObjectByName returns the object with the given name, or nil.
func (ct *Catalog) ObjectByName(name string) *Object {
	return ct.names[name]
}

// Partition splits all catalog objects into those whose displayed mesh
// intersects the camera's view frustum and those outside it. The two
// lists are complementary and exhaustive, in catalog order. It is a
// pure query: no object or camera state is mutated. An object with no
// loaded level yet is an error.
func (ct *Catalog) Partition(cam viewpoint.Camera) (visible, invisible []*Object, err error) {
	fr := cam.CullingFrustum()
	for _, ob := range ct.Objects {
		dm := ob.Displayed()
		if dm == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoLevelLoaded, ob.Name)
		}
		if fr.IntersectsBox(dm.BBox()) {
			visible = append(visible, ob)
		} else {
			invisible = append(invisible, ob)
		}
	}
	return visible, invisible, nil
}

// VisibleObjects returns the catalog objects whose displayed mesh is
// inside the camera's view frustum.
func (ct *Catalog) VisibleObjects(cam viewpoint.Camera) ([]*Object, error) {
	vis, _, err := ct.Partition(cam)
	return vis, err
}

// InvisibleObjects returns the catalog objects whose displayed mesh is
// outside the camera's view frustum.
func (ct *Catalog) InvisibleObjects(cam viewpoint.Camera) ([]*Object, error) {
	_, invis, err := ct.Partition(cam)
	return invis, err
}

// AllLoaded reports whether every level of every object has loaded,
// the terminal state after which scheduling ticks are no-ops.
func (ct *Catalog) AllLoaded() bool {
	for _, ob := range ct.Objects {
		if !ob.AllLoaded() {
			return false
		}
	}
	return true
}

// BeginPass attempts to mark a scheduling pass as in flight, and
// reports whether it may proceed. A pass that is refused must be
// dropped, not queued.
func (ct *Catalog) BeginPass() bool {
	return ct.inFlight.CompareAndSwap(false, true)
}

// EndPass marks the in-flight scheduling pass as finished.
func (ct *Catalog) EndPass() {
	ct.inFlight.Store(false)
}
