// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strategy decides, on every scheduling tick, which level of
// detail of which object to fetch next, given the current throughput
// estimate, the predicted viewpoint, and the active utility metric.
// Six interchangeable strategies are provided, selected by the
// [Strategies] enum.
package strategy

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/lodstream/lodstream/metric"
	"github.com/lodstream/lodstream/scene"
	"github.com/lodstream/lodstream/throughput"
	"github.com/lodstream/lodstream/viewpoint"
)

//go:generate core generate

// Strategies are the interchangeable scheduling strategies.
type Strategies int32 //enums:enum

const (
	// Naive fetches the single best quality x current-utility level
	// among objects visible now or at the horizon, with no cost
	// normalization.
	Naive Strategies = iota

	// Greedy1 fetches the single level with the best utility at its
	// predicted completion time, times quality, per second of
	// projected fetch-and-decode time.
	Greedy1

	// Proposed1 fetches the single level with the largest integral of
	// predicted utility from its completion time to the horizon,
	// scaled by quality, falling back to a Greedy1-style instantaneous
	// score for levels that cannot complete within the horizon.
	Proposed1

	// Greedy2 walks all objects in utility order, repeatedly raising
	// each object's target level while the incremental byte cost fits
	// the per-tick budget.
	Greedy2

	// Uniform2 raises a shared target level across all objects in
	// utility order, in lock-step passes, while the budget lasts.
	Uniform2

	// Hybrid2 applies Uniform2 to the visible partition, then Greedy2
	// to the invisible partition with the remaining budget.
	Hybrid2
)

const (
	// DefaultHorizon is the default future time offset, in seconds,
	// used to value near-term visibility.
	DefaultHorizon = 10

	// DefaultBufferSeconds is the default buffering interval that the
	// per-tick byte budget covers.
	DefaultBufferSeconds = 2

	// riemannIntervals is the number of sub-intervals used to
	// approximate the utility integral in Proposed1.
	riemannIntervals = 4
)

// Scheduler runs scheduling passes over a catalog. The strategy and
// metric are plain fields, switchable at runtime between ticks.
type Scheduler struct {
	// Strategy selects the scheduling algorithm.
	Strategy Strategies

	// Metric selects the utility metric used to score objects.
	Metric metric.Metrics

	// Estimator is the session throughput estimator.
	Estimator *throughput.Estimator

	// Predictor supplies the current and predicted viewpoints.
	Predictor *viewpoint.Predictor

	// Horizon is the future time offset, in seconds, at which
	// near-term visibility is valued.
	Horizon float32

	// BufferSeconds is the buffering interval covered by the per-tick
	// byte budget of the budgeted strategies.
	BufferSeconds float32
}

// NewScheduler returns a new [Scheduler] with default horizon and
// buffering, using the given estimator and predictor.
func NewScheduler(est *throughput.Estimator, pd *viewpoint.Predictor) *Scheduler {
	return &Scheduler{
		Estimator:     est,
		Predictor:     pd,
		Horizon:       DefaultHorizon,
		BufferSeconds: DefaultBufferSeconds,
	}
}

// candidate is one (object, level) fetch decision.
type candidate struct {
	ob    *scene.Object
	level int
	score float32
}

// Execute runs one scheduling pass over the catalog and returns the
// newly displayed meshes. A pass that selects no candidate is a valid,
// silent no-op. If another pass is already in flight on the catalog,
// the call is dropped, not queued. Once every level of every object is
// loaded, further passes are no-ops.
func (sd *Scheduler) Execute(ctx context.Context, ct *scene.Catalog) ([]scene.Mesh, error) {
	if !ct.BeginPass() {
		slog.Debug("scheduling pass dropped: one already in flight")
		return nil, nil
	}
	defer ct.EndPass()
	if ct.AllLoaded() {
		return nil, nil
	}
	switch sd.Strategy {
	case Naive:
		return sd.naive(ctx, ct)
	case Greedy1:
		return sd.greedy1(ctx, ct)
	case Proposed1:
		return sd.proposed1(ctx, ct)
	case Greedy2:
		return sd.greedy2(ctx, ct)
	case Uniform2:
		return sd.uniform2(ctx, ct)
	case Hybrid2:
		return sd.hybrid2(ctx, ct)
	}
	return nil, fmt.Errorf("strategy: unknown strategy %v", sd.Strategy)
}

// horizonObjects returns the objects visible now or at the horizon
// viewpoint, preserving encounter order.
func (sd *Scheduler) horizonObjects(ct *scene.Catalog) ([]*scene.Object, error) {
	vis, err := ct.VisibleObjects(sd.Predictor.Current())
	if err != nil {
		return nil, err
	}
	fut := sd.Predictor.Predict(sd.Horizon)
	defer fut.Release()
	futVis, err := ct.VisibleObjects(fut)
	if err != nil {
		return nil, err
	}
	seen := map[*scene.Object]bool{}
	var objs []*scene.Object
	for _, ob := range append(vis, futVis...) {
		if !seen[ob] {
			seen[ob] = true
			objs = append(objs, ob)
		}
	}
	return objs, nil
}

// rank returns the objects sorted by current utility, strictly
// descending. The sort is stable: ties retain encounter order, for
// deterministic scheduling.
func (sd *Scheduler) rank(objs []*scene.Object) []*scene.Object {
	cam := sd.Predictor.Current()
	type scored struct {
		ob *scene.Object
		u  float32
	}
	ss := make([]scored, len(objs))
	for i, ob := range objs {
		ss[i] = scored{ob, metric.Score(sd.Metric, ob, cam)}
	}
	slices.SortStableFunc(ss, func(a, b scored) int {
		return cmp.Compare(b.u, a.u)
	})
	ranked := make([]*scene.Object, len(ss))
	for i, s := range ss {
		ranked[i] = s.ob
	}
	return ranked
}

// fetchTime returns the projected seconds to fetch and decode the
// given number of bytes at the current rate estimates.
func (sd *Scheduler) fetchTime(size int64) float32 {
	bw := sd.Estimator.Bandwidth()
	dec := sd.Estimator.DecodeRate()
	if bw <= 0 || dec <= 0 {
		return math32.Infinity
	}
	return float32(size) * (1/bw + 1/dec)
}

// fetchAll issues the selected fetches concurrently, awaits them all,
// and returns the meshes that loaded. A failure of one candidate never
// aborts the pass: it is logged and the remaining candidates proceed.
func (sd *Scheduler) fetchAll(ctx context.Context, cands []candidate) []scene.Mesh {
	if len(cands) == 0 {
		return nil
	}
	meshes := make([]scene.Mesh, len(cands))
	var wg sync.WaitGroup
	for i, cn := range cands {
		wg.Add(1)
		go func(i int, cn candidate) {
			defer wg.Done()
			ms, err := cn.ob.FetchLevel(ctx, cn.level)
			if err != nil {
				slog.Error("level fetch abandoned",
					"object", cn.ob.Name, "level", cn.level, "err", err)
				return
			}
			meshes[i] = ms
		}(i, cn)
	}
	wg.Wait()
	var out []scene.Mesh
	for _, ms := range meshes {
		if ms != nil {
			out = append(out, ms)
		}
	}
	return out
}
