// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewpoint

import "cogentcore.org/core/math32"

// Pose contains a position and orientation transform, with a cached
// local transform matrix.
type Pose struct {
	// Pos is the position in world coordinates.
	Pos math32.Vector3

	// Quat is the rotation in quaternion form.
	Quat math32.Quat

	// Scale is the scale of the transform, typically 1.
	Scale math32.Vector3

	// Matrix is the cached local transform matrix,
	// updated by [Pose.UpdateMatrix].
	Matrix math32.Matrix4
}

// Defaults sets the pose to its default identity values.
func (ps *Pose) Defaults() {
	ps.Quat.SetIdentity()
	ps.Scale.Set(1, 1, 1)
}

// UpdateMatrix updates the cached transform matrix from the current
// position, rotation, and scale.
func (ps *Pose) UpdateMatrix() {
	ps.Quat.Normalize()
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// SetEulerRotation sets the rotation from the given Euler angles,
// in degrees.
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(math32.DegToRad(x), math32.DegToRad(y), math32.DegToRad(z)))
}

// SetEulerRotationRad sets the rotation from the given Euler angles,
// in radians.
func (ps *Pose) SetEulerRotationRad(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z))
}

// EulerRotationRad returns the rotation as Euler angles, in radians.
func (ps *Pose) EulerRotationRad() math32.Vector3 {
	return ps.Quat.ToEuler()
}

// LookAt points the pose at the given target location,
// using the given up direction.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	ps.Quat.SetFromRotationMatrix(math32.NewLookAt(ps.Pos, target, upDir))
}
