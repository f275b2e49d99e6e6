// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metric scores how desirable it is to stream a given object
// next, under a given viewpoint. Five interchangeable metrics are
// provided, selected by the [Metrics] enum.
package metric

import (
	"cogentcore.org/core/math32"
	"github.com/lodstream/lodstream/scene"
	"github.com/lodstream/lodstream/viewpoint"
)

//go:generate core generate

// Metrics are the interchangeable utility metrics.
type Metrics int32 //enums:enum

const (
	// Distance scores inversely to the squared distance between the
	// object and the viewpoint: closer objects are worth more.
	Distance Metrics = iota

	// Surface is [Distance] weighted by the object's true surface
	// area at its fixed scale.
	Surface

	// Visible scores the on-screen area of the object's bounding box
	// hull, clipped to the viewport: 0 when the object is behind the
	// camera or entirely outside the viewport.
	Visible

	// Potential scores the on-screen area the object would have if the
	// viewpoint turned to look straight at it, valuing currently
	// offscreen objects.
	Potential

	// VisiblePotential is the [Visible] score when it is nonzero, and
	// otherwise -cos of the [Potential] score: a negative fallback
	// that still orders invisible objects by their potential without
	// colliding with positive visible scores.
	VisiblePotential
)

// Score returns the utility of streaming the given object next, under
// the given viewpoint, per the selected metric. Scoring never mutates
// the object's displayed state or the caller's camera; any camera
// clone created for scoring is released before returning.
func Score(mt Metrics, ob *scene.Object, cam viewpoint.Camera) float32 {
	switch mt {
	case Distance:
		return distanceScore(ob, cam)
	case Surface:
		return surfaceScore(ob, cam)
	case Visible:
		return visibleScore(ob, cam)
	case Potential:
		return potentialScore(ob, cam)
	case VisiblePotential:
		if vs := visibleScore(ob, cam); vs != 0 {
			return vs
		}
		return -math32.Cos(potentialScore(ob, cam))
	}
	return 0
}

func distanceScore(ob *scene.Object, cam viewpoint.Camera) float32 {
	dsq := ob.Pose.Pos.DistanceToSquared(cam.Base().Pose.Pos)
	if dsq == 0 {
		return math32.MaxFloat32
	}
	return 1 / dsq
}

func surfaceScore(ob *scene.Object, cam viewpoint.Camera) float32 {
	dsq := ob.Pose.Pos.DistanceToSquared(cam.Base().Pose.Pos)
	sc := ob.Pose.Scale.X
	if dsq == 0 {
		return math32.MaxFloat32
	}
	return ob.SurfaceArea * sc * sc / dsq
}

func visibleScore(ob *scene.Object, cam viewpoint.Camera) float32 {
	return projectedArea(ob.WorldBounds(), cam)
}

func potentialScore(ob *scene.Object, cam viewpoint.Camera) float32 {
	bb := ob.WorldBounds()
	nc := cam.Clone()
	defer nc.Release()
	nc.LookAt(bb.Center())
	return projectedArea(bb, nc)
}

// projectedArea returns the viewport area covered by the convex hull
// of the box corners projected through the camera, clipped to the unit
// screen rectangle. Corners behind the camera are dropped; fewer than
// 3 surviving points yield 0.
func projectedArea(bb math32.Box3, cam viewpoint.Camera) float32 {
	vp := &cam.Base().VPMatrix
	var pts []math32.Vector2
	for _, c := range boxCorners(bb) {
		v := math32.Vec4(c.X, c.Y, c.Z, 1).MulMatrix4(vp)
		if v.W <= 0 {
			continue
		}
		ndc := v.PerspDiv()
		pts = append(pts, math32.Vec2((ndc.X+1)/2, (ndc.Y+1)/2))
	}
	hull := ConvexHull(pts)
	return PolygonArea(ClipUnitSquare(hull))
}

func boxCorners(bb math32.Box3) [8]math32.Vector3 {
	return [8]math32.Vector3{
		math32.Vec3(bb.Min.X, bb.Min.Y, bb.Min.Z),
		math32.Vec3(bb.Min.X, bb.Min.Y, bb.Max.Z),
		math32.Vec3(bb.Min.X, bb.Max.Y, bb.Min.Z),
		math32.Vec3(bb.Min.X, bb.Max.Y, bb.Max.Z),
		math32.Vec3(bb.Max.X, bb.Min.Y, bb.Min.Z),
		math32.Vec3(bb.Max.X, bb.Min.Y, bb.Max.Z),
		math32.Vec3(bb.Max.X, bb.Max.Y, bb.Min.Z),
		math32.Vec3(bb.Max.X, bb.Max.Y, bb.Max.Z),
	}
}
