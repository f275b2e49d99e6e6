// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewpoint

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestDesktopCloneIndependent(t *testing.T) {
	dc := NewDesktop()
	dc.Pose.Pos.Set(1, 2, 3)
	dc.UpdateMatrix()

	nc := dc.Clone()
	nc.Base().Pose.Pos.Set(9, 9, 9)
	nc.UpdateMatrix()

	assert.Equal(t, math32.Vec3(1, 2, 3), dc.Pose.Pos)
	nc.Release()
}

func TestDesktopExtrapolatePosition(t *testing.T) {
	dc := NewDesktop()
	dc.Pose.Pos.Set(1, 0, 0)
	dc.UpdateMatrix()

	prev := Pose{}
	prev.Defaults()
	prev.Pos.Set(0, 0, 0)

	// moved +1 X in one frame; two frames ahead = +2 more
	nc := dc.Extrapolate(&prev, 2)
	defer nc.Release()
	pos := nc.Base().Pose.Pos
	tolassert.Equal(t, 3, pos.X)
	tolassert.Equal(t, 0, pos.Y)
	tolassert.Equal(t, 0, pos.Z)

	// the live camera is untouched
	assert.Equal(t, math32.Vec3(1, 0, 0), dc.Pose.Pos)
}

func TestDesktopExtrapolateEuler(t *testing.T) {
	dc := NewDesktop()
	dc.Pose.SetEulerRotation(0, 20, 0)
	dc.UpdateMatrix()

	prev := Pose{}
	prev.Defaults()
	prev.SetEulerRotation(0, 10, 0)

	nc := dc.Extrapolate(&prev, 1)
	defer nc.Release()
	e := nc.Base().Pose.EulerRotationRad()
	tolassert.EqualTol(t, math32.DegToRad(30), e.Y, 1.0e-4)
}

func TestImmersiveExtrapolateStationary(t *testing.T) {
	ic := NewImmersive()
	ic.Pose.Pos.Set(0, 1.7, 0)
	ic.Pose.SetEulerRotation(0, 45, 0)
	ic.UpdateMatrix()

	prev := ic.Pose // no motion between frames

	nc := ic.Extrapolate(&prev, 3)
	defer nc.Release()
	np := nc.Base().Pose

	tolassert.Equal(t, 0, np.Pos.X)
	tolassert.Equal(t, 1.7, np.Pos.Y)

	// a stationary viewpoint predicts an unchanged orientation:
	// compare by rotating a probe vector
	probe := math32.Vec3(0, 0, -1)
	want := probe.MulQuat(ic.Pose.Quat)
	got := probe.MulQuat(np.Quat)
	tolassert.EqualTol(t, want.X, got.X, 1.0e-4)
	tolassert.EqualTol(t, want.Z, got.Z, 1.0e-4)
}

func TestImmersiveExtrapolateYaw(t *testing.T) {
	ic := NewImmersive()
	ic.Pose.SetEulerRotation(0, 10, 0)
	ic.UpdateMatrix()

	prev := Pose{}
	prev.Defaults()

	// 10 degrees per frame, one frame ahead = 20 degrees total
	nc := ic.Extrapolate(&prev, 1)
	defer nc.Release()
	e := nc.Base().Pose.EulerRotationRad()
	tolassert.EqualTol(t, math32.DegToRad(20), e.Y, 1.0e-3)
}

func TestDesktopCullingFrustum(t *testing.T) {
	dc := NewDesktop()
	dc.Pose.Pos.Set(0, 0, 10)
	dc.LookAt(math32.Vec3(0, 0, 0)) // looking down -Z

	fr := dc.CullingFrustum()
	ahead := math32.B3(-1, -1, -1, 1, 1, 1)
	behind := math32.B3(-1, -1, 19, 1, 1, 21)
	assert.True(t, fr.IntersectsBox(ahead))
	assert.False(t, fr.IntersectsBox(behind))
}

func TestImmersiveCullingFrustumYawOffset(t *testing.T) {
	ic := NewImmersive()
	ic.Pose.Pos.Set(0, 0, 10)
	// native orientation convention carries a fixed 180 degree yaw:
	// this stored orientation means "looking down -Z" in the world.
	ic.Pose.Quat = yaw180
	ic.UpdateMatrix()
	savedQuat := ic.Pose.Quat

	fr := ic.CullingFrustum()
	ahead := math32.B3(-1, -1, -1, 1, 1, 1)
	behind := math32.B3(-1, -1, 19, 1, 1, 21)
	assert.True(t, fr.IntersectsBox(ahead))
	assert.False(t, fr.IntersectsBox(behind))

	// the camera itself is unmodified end to end
	assert.Equal(t, savedQuat, ic.Pose.Quat)
}
