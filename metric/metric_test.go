// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metric_test

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/lodstream/lodstream/metric"
	"github.com/lodstream/lodstream/scene"
	"github.com/lodstream/lodstream/throughput"
	"github.com/lodstream/lodstream/viewpoint"
	"github.com/stretchr/testify/assert"
)

func testObject(name string, pos math32.Vector3, scale, area float32, bounds math32.Box3) *scene.Object {
	return scene.NewObject(&scene.ObjectInfo{
		Name:        name,
		Position:    pos,
		Scale:       scale,
		SurfaceArea: area,
		Bounds:      bounds,
		Levels:      []scene.LevelInfo{{Path: name + "/0.drc", Size: 100}},
	}, throughput.NewEstimator(), nil, nil)
}

func unitBounds() math32.Box3 {
	return math32.B3(-1, -1, -1, 1, 1, 1)
}

func camAt(pos math32.Vector3, target math32.Vector3) *viewpoint.Desktop {
	dc := viewpoint.NewDesktop()
	dc.Pose.Pos = pos
	dc.LookAt(target)
	return dc
}

func TestDistanceScore(t *testing.T) {
	ob := testObject("a", math32.Vec3(0, 0, 0), 1, 10, unitBounds())
	cam := camAt(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0))
	tolassert.Equal(t, 0.01, metric.Score(metric.Distance, ob, cam))

	near := testObject("b", math32.Vec3(0, 0, 10), 1, 10, unitBounds())
	// zero distance: a very large finite value, not a crash
	got := metric.Score(metric.Distance, near, cam)
	assert.Equal(t, float32(math32.MaxFloat32), got)
}

func TestDistanceOrdersByProximity(t *testing.T) {
	cam := camAt(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, -1))
	near := testObject("near", math32.Vec3(0, 0, -2), 1, 10, unitBounds())
	far := testObject("far", math32.Vec3(0, 0, -10), 1, 10, unitBounds())
	assert.Greater(t,
		metric.Score(metric.Distance, near, cam),
		metric.Score(metric.Distance, far, cam))
}

func TestSurfaceScore(t *testing.T) {
	ob := testObject("a", math32.Vec3(0, 0, 0), 2, 12, unitBounds())
	cam := camAt(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0))
	// area * scale^2 / dist^2 = 12 * 4 / 100
	tolassert.Equal(t, 0.48, metric.Score(metric.Surface, ob, cam))
}

func TestVisibleScore(t *testing.T) {
	ob := testObject("a", math32.Vec3(0, 0, 0), 1, 10, unitBounds())
	cam := camAt(math32.Vec3(0, 0, 10), math32.Vec3(0, 0, 0))

	vs := metric.Score(metric.Visible, ob, cam)
	assert.Greater(t, vs, float32(0))
	assert.LessOrEqual(t, vs, float32(1))

	// same object behind the camera projects nothing
	behind := testObject("b", math32.Vec3(0, 0, 30), 1, 10, unitBounds())
	assert.Equal(t, float32(0), metric.Score(metric.Visible, behind, cam))
}

func TestVisibleGrowsWithProximity(t *testing.T) {
	cam := camAt(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, -1))
	near := testObject("near", math32.Vec3(0, 0, -4), 1, 10, unitBounds())
	far := testObject("far", math32.Vec3(0, 0, -20), 1, 10, unitBounds())
	assert.Greater(t,
		metric.Score(metric.Visible, near, cam),
		metric.Score(metric.Visible, far, cam))
}

func TestPotentialScoresOffscreenObject(t *testing.T) {
	cam := camAt(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, -1))
	// off to the side: invisible now, but worth something if looked at
	side := testObject("side", math32.Vec3(30, 0, 0), 1, 10, unitBounds())
	assert.Equal(t, float32(0), metric.Score(metric.Visible, side, cam))
	assert.Greater(t, metric.Score(metric.Potential, side, cam), float32(0))

	// scoring retargets a clone, never the caller's camera
	assert.Equal(t, math32.Vec3(0, 0, 0), cam.Pose.Pos)
	e := cam.Pose.EulerRotationRad()
	tolassert.Equal(t, 0, e.Y)
}

func TestVisiblePotentialFallback(t *testing.T) {
	cam := camAt(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, -1))

	// visible object: identical to the Visible score
	front := testObject("front", math32.Vec3(0, 0, -5), 1, 10, unitBounds())
	assert.Equal(t,
		metric.Score(metric.Visible, front, cam),
		metric.Score(metric.VisiblePotential, front, cam))

	// invisible object with potential: negative fallback ordering
	side := testObject("side", math32.Vec3(30, 0, 0), 1, 10, unitBounds())
	vp := metric.Score(metric.VisiblePotential, side, cam)
	pot := metric.Score(metric.Potential, side, cam)
	assert.Less(t, vp, float32(0))
	tolassert.Equal(t, -math32.Cos(pot), vp)
}

func TestVisiblePotentialZeroPotential(t *testing.T) {
	cam := camAt(math32.Vec3(0, 0, 0), math32.Vec3(0, 0, -1))
	// a degenerate bounding box projects no hull anywhere, so both
	// Visible and Potential are 0, and the fallback is -cos(0) = -1
	point := testObject("point", math32.Vec3(0, 0, 30), 1, 10, math32.Box3{})
	tolassert.Equal(t, -1, metric.Score(metric.VisiblePotential, point, cam))
}

func TestMetricsEnum(t *testing.T) {
	assert.Equal(t, "Visible", metric.Visible.String())
	var mt metric.Metrics
	assert.NoError(t, mt.SetString("VisiblePotential"))
	assert.Equal(t, metric.VisiblePotential, mt)
	assert.Error(t, mt.SetString("nope"))
	assert.Equal(t, int64(5), int64(metric.MetricsN))
}
