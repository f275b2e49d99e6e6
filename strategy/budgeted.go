// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strategy

import (
	"context"

	"github.com/lodstream/lodstream/scene"
)

// The budgeted strategies plan a whole set of (object, level) fetches
// per pass, spending a byte budget derived from the throughput
// estimate, and issue the set concurrently.

func (sd *Scheduler) greedy2(ctx context.Context, ct *scene.Catalog) ([]scene.Mesh, error) {
	ranked := sd.rank(ct.Objects)
	cands, _ := planGreedy(ranked, sd.Estimator.Budget(sd.BufferSeconds))
	if len(cands) == 0 {
		cands = fallbackSingle(ranked)
	}
	return sd.fetchAll(ctx, cands), nil
}

func (sd *Scheduler) uniform2(ctx context.Context, ct *scene.Catalog) ([]scene.Mesh, error) {
	ranked := sd.rank(ct.Objects)
	cands, _ := planUniform(ranked, sd.Estimator.Budget(sd.BufferSeconds))
	if len(cands) == 0 {
		cands = fallbackSingle(ranked)
	}
	return sd.fetchAll(ctx, cands), nil
}

func (sd *Scheduler) hybrid2(ctx context.Context, ct *scene.Catalog) ([]scene.Mesh, error) {
	vis, invis, err := ct.Partition(sd.Predictor.Current())
	if err != nil {
		return nil, err
	}
	rvis := sd.rank(vis)
	rinvis := sd.rank(invis)
	cands, remaining := planUniform(rvis, sd.Estimator.Budget(sd.BufferSeconds))
	more, _ := planGreedy(rinvis, remaining)
	cands = append(cands, more...)
	if len(cands) == 0 {
		// visible objects first, then anything at all
		cands = fallbackSingle(rvis)
		if len(cands) == 0 {
			cands = fallbackSingle(rinvis)
		}
	}
	return sd.fetchAll(ctx, cands), nil
}

// planGreedy walks the ranked objects in order, raising each object's
// target level while the incremental cost fits the remaining budget,
// before moving on to the next object.
func planGreedy(ranked []*scene.Object, budget float32) (cands []candidate, remaining float32) {
	remaining = budget
	for _, ob := range ranked {
		lv := ob.NextLevel()
		if lv < 0 {
			continue
		}
		for lv < ob.NumLevels() {
			if ob.Levels[lv].Requested {
				lv++
				continue
			}
			cost := float32(incrementalCost(ob, lv))
			if cost > remaining {
				break
			}
			remaining -= cost
			cands = append(cands, candidate{ob: ob, level: lv})
			lv++
		}
	}
	return cands, remaining
}

// planUniform raises a shared target level across the ranked objects
// in lock-step passes: each pass bumps every object at most one level,
// in utility order, and the planning ends on the first pass that
// upgrades nothing.
func planUniform(ranked []*scene.Object, budget float32) (cands []candidate, remaining float32) {
	remaining = budget
	next := make(map[*scene.Object]int, len(ranked))
	for _, ob := range ranked {
		next[ob] = ob.NextLevel()
	}
	for {
		upgraded := false
		for _, ob := range ranked {
			lv := next[ob]
			if lv < 0 {
				continue
			}
			for lv < ob.NumLevels() && ob.Levels[lv].Requested {
				lv++
			}
			if lv >= ob.NumLevels() {
				next[ob] = -1
				continue
			}
			cost := float32(incrementalCost(ob, lv))
			if cost > remaining {
				next[ob] = -1
				continue
			}
			remaining -= cost
			cands = append(cands, candidate{ob: ob, level: lv})
			next[ob] = lv + 1
			upgraded = true
		}
		if !upgraded {
			break
		}
	}
	return cands, remaining
}

// incrementalCost is the byte cost of raising an object to the given
// level: the size delta over the level below it, or the full size for
// the base level.
func incrementalCost(ob *scene.Object, level int) int64 {
	if level <= 0 {
		return ob.LevelSize(0)
	}
	return ob.LevelSize(level) - ob.LevelSize(level-1)
}

// fallbackSingle returns the single next level of the highest-ranked
// upgradable object, ignoring the budget. A pass whose budget admits
// nothing still makes progress, at the price of transiently exceeding
// the budget.
func fallbackSingle(ranked []*scene.Object) []candidate {
	for _, ob := range ranked {
		if lv := ob.NextLevel(); lv >= 0 {
			return []candidate{{ob: ob, level: lv}}
		}
	}
	return nil
}
