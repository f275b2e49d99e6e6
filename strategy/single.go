// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strategy

import (
	"context"

	"github.com/lodstream/lodstream/metric"
	"github.com/lodstream/lodstream/scene"
)

// The single-candidate strategies pick at most one (object, level) per
// pass, from objects visible now or at the horizon viewpoint.

func (sd *Scheduler) naive(ctx context.Context, ct *scene.Catalog) ([]scene.Mesh, error) {
	objs, err := sd.horizonObjects(ct)
	if err != nil {
		return nil, err
	}
	cam := sd.Predictor.Current()
	best := candidate{level: -1}
	for _, ob := range objs {
		lv := ob.NextLevel()
		if lv < 0 {
			continue
		}
		score := ob.Quality(lv) * metric.Score(sd.Metric, ob, cam)
		if best.level < 0 || score > best.score {
			best = candidate{ob, lv, score}
		}
	}
	if best.level < 0 {
		return nil, nil
	}
	return sd.fetchAll(ctx, []candidate{best}), nil
}

func (sd *Scheduler) greedy1(ctx context.Context, ct *scene.Catalog) ([]scene.Mesh, error) {
	objs, err := sd.horizonObjects(ct)
	if err != nil {
		return nil, err
	}
	best := candidate{level: -1}
	for _, ob := range objs {
		lv := ob.NextLevel()
		if lv < 0 {
			continue
		}
		ft := sd.fetchTime(ob.LevelSize(lv))
		if ft <= 0 {
			continue
		}
		score := sd.scoreAt(ob, ft) * ob.Quality(lv) / ft
		if best.level < 0 || score > best.score {
			best = candidate{ob, lv, score}
		}
	}
	if best.level < 0 {
		return nil, nil
	}
	return sd.fetchAll(ctx, []candidate{best}), nil
}

func (sd *Scheduler) proposed1(ctx context.Context, ct *scene.Catalog) ([]scene.Mesh, error) {
	objs, err := sd.horizonObjects(ct)
	if err != nil {
		return nil, err
	}
	// levels that can complete within the horizon are scored by the
	// utility integral over their remaining display window; levels that
	// cannot get an instantaneous score, used only when no integral
	// candidate exists at all.
	bestInt := candidate{level: -1}
	bestInst := candidate{level: -1}
	for _, ob := range objs {
		lv := ob.NextLevel()
		if lv < 0 {
			continue
		}
		ft := sd.fetchTime(ob.LevelSize(lv))
		if ft <= 0 {
			continue
		}
		if ft < sd.Horizon {
			score := sd.utilityIntegral(ob, ft) * ob.Quality(lv)
			if bestInt.level < 0 || score > bestInt.score {
				bestInt = candidate{ob, lv, score}
			}
			continue
		}
		score := sd.scoreAt(ob, ft) * ob.Quality(lv) / ft
		if bestInst.level < 0 || score > bestInst.score {
			bestInst = candidate{ob, lv, score}
		}
	}
	best := bestInt
	if best.level < 0 {
		best = bestInst
	}
	if best.level < 0 {
		return nil, nil
	}
	return sd.fetchAll(ctx, []candidate{best}), nil
}

// scoreAt returns the object's utility at the viewpoint predicted
// deltaSeconds ahead.
func (sd *Scheduler) scoreAt(ob *scene.Object, deltaSeconds float32) float32 {
	fut := sd.Predictor.Predict(deltaSeconds)
	defer fut.Release()
	return metric.Score(sd.Metric, ob, fut)
}

// utilityIntegral approximates the integral of the object's predicted
// utility over [from, Horizon] with a left Riemann sum over
// [riemannIntervals] sub-intervals.
func (sd *Scheduler) utilityIntegral(ob *scene.Object, from float32) float32 {
	dt := (sd.Horizon - from) / riemannIntervals
	if dt <= 0 {
		return 0
	}
	sum := float32(0)
	for k := range riemannIntervals {
		sum += sd.scoreAt(ob, from+float32(k)*dt) * dt
	}
	return sum
}
