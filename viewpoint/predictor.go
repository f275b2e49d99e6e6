// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewpoint

import "time"

// Predictor produces the current camera state and linearly extrapolated
// future camera states, from the pose history recorded by [Predictor.Observe].
type Predictor struct {
	// Camera is the live session camera.
	Camera Camera

	// Clock returns the current time. It defaults to [time.Now] and is
	// replaceable for deterministic tests.
	Clock func() time.Time

	// prev is the camera pose at the previous render tick.
	prev Pose

	// saved is the camera pose at the most recent render tick.
	saved Pose

	// frameDelta is the measured time between the last two Observe
	// calls, in seconds.
	frameDelta float32

	prevTime time.Time
	ticks    int
}

// NewPredictor returns a new [Predictor] for the given live camera.
func NewPredictor(cam Camera) *Predictor {
	return &Predictor{Camera: cam, Clock: time.Now}
}

// Observe snapshots the live camera pose for use as the previous pose
// on the next tick, and measures the frame delta. It must be called
// exactly once per render tick, after all scene mutation for the tick:
// snapshotting before movement is applied yields one-tick-stale
// predictions.
func (pd *Predictor) Observe() {
	now := pd.Clock()
	if pd.ticks > 0 {
		pd.frameDelta = float32(now.Sub(pd.prevTime).Seconds())
	}
	pd.prev = pd.saved
	pd.saved = pd.Camera.Base().Pose
	pd.prevTime = now
	pd.ticks++
}

// Current returns the live camera. It is shared state, not a snapshot:
// callers must not mutate or release it.
func (pd *Predictor) Current() Camera {
	return pd.Camera
}

// Predict returns a new, independent camera representing where the
// viewpoint will be after deltaSeconds, by linear extrapolation of the
// motion between the previous and current poses. The returned camera is
// ephemeral: the caller must call [Camera.Release] after use. Before
// two ticks of history exist, it returns an unextrapolated clone.
func (pd *Predictor) Predict(deltaSeconds float32) Camera {
	if pd.ticks < 2 || pd.frameDelta <= 0 {
		nc := pd.Camera.Clone()
		nc.UpdateMatrix()
		return nc
	}
	return pd.Camera.Extrapolate(&pd.prev, deltaSeconds/pd.frameDelta)
}
