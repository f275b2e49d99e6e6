// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metric

import "cogentcore.org/core/math32"

// ConvexHull returns the 2D convex hull of the given points by gift
// wrapping: starting from the leftmost point and walking clockwise,
// using the orientation test cross(q-p, r-q) < 0. The result is
// independent of input point order. Fewer than 3 input points, or
// degenerate (collinear) input, return nil.
func ConvexHull(pts []math32.Vector2) []math32.Vector2 {
	pts = dedup(pts)
	if len(pts) < 3 {
		return nil
	}
	start := 0
	for i, p := range pts {
		if p.X < pts[start].X || (p.X == pts[start].X && p.Y < pts[start].Y) {
			start = i
		}
	}
	var hull []math32.Vector2
	p := start
	for {
		hull = append(hull, pts[p])
		q := (p + 1) % len(pts)
		for r := range pts {
			if r == p {
				continue
			}
			if pts[q].Sub(pts[p]).Cross(pts[r].Sub(pts[q])) < 0 {
				q = r
			}
		}
		p = q
		if p == start {
			break
		}
		if len(hull) > len(pts) {
			// collinear or duplicate input cannot close the walk
			return nil
		}
	}
	if len(hull) < 3 {
		return nil
	}
	return hull
}

// dedup removes exactly coincident points, which arise when box
// corners project onto the same screen position and would stall the
// gift wrap walk.
func dedup(pts []math32.Vector2) []math32.Vector2 {
	var out []math32.Vector2
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p == q {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// ClipUnitSquare clips the given convex polygon to the unit square
// [0,1]x[0,1] with Sutherland-Hodgman clipping. A result degenerating
// below 3 vertices returns nil.
func ClipUnitSquare(poly []math32.Vector2) []math32.Vector2 {
	if len(poly) < 3 {
		return nil
	}
	// signed distances inside each of the four square edges
	edges := []func(math32.Vector2) float32{
		func(p math32.Vector2) float32 { return p.X },
		func(p math32.Vector2) float32 { return 1 - p.X },
		func(p math32.Vector2) float32 { return p.Y },
		func(p math32.Vector2) float32 { return 1 - p.Y },
	}
	out := poly
	for _, inside := range edges {
		in := out
		out = nil
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			ci, pi := inside(cur), inside(prev)
			switch {
			case ci >= 0 && pi >= 0:
				out = append(out, cur)
			case ci >= 0 && pi < 0:
				out = append(out, intersect(prev, cur, pi, ci), cur)
			case ci < 0 && pi >= 0:
				out = append(out, intersect(prev, cur, pi, ci))
			}
		}
		if len(out) == 0 {
			return nil
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

// intersect returns the point on segment a-b where the signed edge
// distance crosses zero, given the distances da and db at the
// endpoints.
func intersect(a, b math32.Vector2, da, db float32) math32.Vector2 {
	t := da / (da - db)
	return a.Add(b.Sub(a).MulScalar(t))
}

// PolygonArea returns the area of the given simple polygon by the
// shoelace formula, independent of winding order. Fewer than 3
// vertices yield 0.
func PolygonArea(poly []math32.Vector2) float32 {
	if len(poly) < 3 {
		return 0
	}
	sum := float32(0)
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math32.Abs(sum) / 2
}
