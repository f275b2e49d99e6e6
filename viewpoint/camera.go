// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewpoint provides the camera snapshot types for the two
// supported camera kinds, and a predictor that extrapolates where the
// viewpoint will be at a future horizon.
package viewpoint

import "cogentcore.org/core/math32"

// Camera is the closed set of supported camera kinds: [Desktop] and
// [Immersive]. The two kinds differ in how orientation is represented
// for prediction (Euler angles vs. quaternion) and in the fixed yaw
// convention their frustum is authored with; everything else is shared
// through [CameraBase].
type Camera interface {

	// Base returns the [CameraBase] for this camera, which provides
	// the shared pose, projection, and matrix functionality.
	Base() *CameraBase

	// UpdateMatrix updates the view, projection, and combined
	// view-projection matrices from the current pose.
	UpdateMatrix()

	// Clone returns a new independent snapshot of this camera.
	// Clones are ephemeral values: callers must call [Camera.Release]
	// when done with them.
	Clone() Camera

	// Release frees the snapshot's cached transform state. Only
	// ephemeral cameras obtained from Clone, Extrapolate, or
	// [Predictor.Predict] should be released.
	Release()

	// LookAt points the camera at the given target location and
	// updates its matrices.
	LookAt(target math32.Vector3)

	// Extrapolate returns a new ephemeral camera advanced beyond the
	// current pose by the motion from prev to current, scaled by
	// factor. The receiver is not modified.
	Extrapolate(prev *Pose, factor float32) Camera

	// CullingFrustum returns the six view-frustum planes to use for
	// visibility tests against this camera, in standard world
	// convention, without modifying the camera.
	CullingFrustum() *math32.Frustum
}

// CameraBase provides the shared implementation of the [Camera]
// interface: pose, perspective projection parameters, and the derived
// matrices.
type CameraBase struct {
	// Pose is the overall position and orientation of the camera.
	Pose Pose

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the viewport aspect ratio (width / height).
	Aspect float32

	// Near is the near plane z coordinate.
	Near float32

	// Far is the far plane z coordinate.
	Far float32

	// ViewMatrix is the inverse of the pose matrix.
	ViewMatrix math32.Matrix4

	// ProjectionMatrix is the perspective projection transform.
	ProjectionMatrix math32.Matrix4

	// VPMatrix is ProjectionMatrix * ViewMatrix, which projects world
	// coordinates into clip space.
	VPMatrix math32.Matrix4
}

// Defaults sets default camera parameters, looking along negative Z
// from the origin.
func (cb *CameraBase) Defaults() {
	cb.FOV = 60
	cb.Aspect = 1.5
	cb.Near = 0.01
	cb.Far = 1000
	cb.Pose.Defaults()
}

func (cb *CameraBase) Base() *CameraBase {
	return cb
}

// UpdateMatrix updates the view, projection, and view-projection
// matrices from the current pose and projection parameters.
func (cb *CameraBase) UpdateMatrix() {
	cb.Pose.UpdateMatrix()
	view, _ := cb.Pose.Matrix.Inverse()
	cb.ViewMatrix = *view
	cb.ProjectionMatrix.SetPerspective(cb.FOV, cb.Aspect, cb.Near, cb.Far)
	cb.VPMatrix.MulMatrices(&cb.ProjectionMatrix, &cb.ViewMatrix)
}

// LookAt points the camera at the given target location with the
// standard Y up direction, and updates the matrices.
func (cb *CameraBase) LookAt(target math32.Vector3) {
	cb.Pose.LookAt(target, math32.Vec3(0, 1, 0))
	cb.UpdateMatrix()
}

// Release frees the snapshot's cached transform state. It is a
// required part of the ephemeral snapshot contract, so that scoring
// passes release every camera they create.
func (cb *CameraBase) Release() {
	cb.ViewMatrix = math32.Matrix4{}
	cb.ProjectionMatrix = math32.Matrix4{}
	cb.VPMatrix = math32.Matrix4{}
}

// frustum returns the view frustum of the current VP matrix.
func (cb *CameraBase) frustum() *math32.Frustum {
	return math32.NewFrustumFromMatrix(&cb.VPMatrix)
}

// extrapolatePos returns the camera position advanced beyond the
// current position by the motion from prev, scaled by factor.
func (cb *CameraBase) extrapolatePos(prev *Pose, factor float32) math32.Vector3 {
	return cb.Pose.Pos.Add(cb.Pose.Pos.Sub(prev.Pos).MulScalar(factor))
}

// Desktop is a standard screen-based camera. Its orientation is
// semantically a set of Euler angles, so prediction extrapolates the
// angles linearly, and its frustum is authored in standard world
// convention.
type Desktop struct {
	CameraBase
}

// NewDesktop returns a new [Desktop] camera with default parameters
// and up to date matrices.
func NewDesktop() *Desktop {
	dc := &Desktop{}
	dc.Defaults()
	dc.UpdateMatrix()
	return dc
}

func (dc *Desktop) Clone() Camera {
	nc := &Desktop{}
	nc.CameraBase = dc.CameraBase
	return nc
}

func (dc *Desktop) Extrapolate(prev *Pose, factor float32) Camera {
	nc := dc.Clone().(*Desktop)
	cb := nc.Base()
	cb.Pose.Pos = dc.extrapolatePos(prev, factor)
	cur := dc.Pose.EulerRotationRad()
	pe := prev.EulerRotationRad()
	ne := cur.Add(cur.Sub(pe).MulScalar(factor))
	cb.Pose.SetEulerRotationRad(ne.X, ne.Y, ne.Z)
	nc.UpdateMatrix()
	return nc
}

func (dc *Desktop) CullingFrustum() *math32.Frustum {
	return dc.frustum()
}

// yaw180 is the fixed 180 degree yaw correction between the immersive
// camera's native orientation convention and standard world
// convention.
var yaw180 = math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.Pi)

// Immersive is a head-tracked camera. Its orientation is a quaternion
// stored with a fixed extra 180 degree yaw relative to standard world
// convention, which must be corrected before and after prediction, and
// countered when building its culling frustum.
type Immersive struct {
	CameraBase
}

// NewImmersive returns a new [Immersive] camera with default
// parameters and up to date matrices.
func NewImmersive() *Immersive {
	ic := &Immersive{}
	ic.Defaults()
	ic.UpdateMatrix()
	return ic
}

func (ic *Immersive) Clone() Camera {
	nc := &Immersive{}
	nc.CameraBase = ic.CameraBase
	return nc
}

func (ic *Immersive) Extrapolate(prev *Pose, factor float32) Camera {
	nc := ic.Clone().(*Immersive)
	cb := nc.Base()
	cb.Pose.Pos = ic.extrapolatePos(prev, factor)

	// correct the yaw convention, scale the incremental rotation from
	// prev to current by factor, then restore the convention.
	cq := yaw180.Mul(ic.Pose.Quat)
	pq := yaw180.Mul(prev.Quat)
	inc := cq.Mul(pq.Inverse())
	inc.Normalize()
	step := scaleQuat(inc, factor)
	cb.Pose.Quat = yaw180.Mul(step.Mul(cq))
	nc.UpdateMatrix()
	return nc
}

// scaleQuat scales the rotation angle of a normalized quaternion by
// factor, in axis-angle form. A near-identity rotation (including the
// negated form) scales to the identity, avoiding a degenerate axis.
func scaleQuat(q math32.Quat, factor float32) math32.Quat {
	w := math32.Clamp(q.W, -1, 1)
	s := math32.Sqrt(1 - w*w)
	if s < 1.0e-4 {
		var ident math32.Quat
		ident.SetIdentity()
		return ident
	}
	axis := math32.Vec3(q.X/s, q.Y/s, q.Z/s)
	return math32.NewQuatAxisAngle(axis, 2*math32.Acos(w)*factor)
}

// CullingFrustum counter-rotates a clone of the camera by the fixed
// yaw offset, builds the frustum there, and releases the clone, so the
// caller's camera is unmodified end to end.
func (ic *Immersive) CullingFrustum() *math32.Frustum {
	nc := ic.Clone().(*Immersive)
	defer nc.Release()
	cb := nc.Base()
	cb.Pose.Quat = yaw180.Mul(cb.Pose.Quat)
	nc.UpdateMatrix()
	return cb.frustum()
}
