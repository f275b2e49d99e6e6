// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lodstream streams the levels of detail of a mesh manifest
// into a simulated viewing session, reporting what each scheduling
// strategy fetches when.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"cogentcore.org/core/math32"
	"github.com/lodstream/lodstream/fetch"
	"github.com/lodstream/lodstream/metric"
	"github.com/lodstream/lodstream/scene"
	"github.com/lodstream/lodstream/sim"
	"github.com/lodstream/lodstream/strategy"
	"github.com/lodstream/lodstream/throughput"
	"github.com/lodstream/lodstream/viewpoint"
)

// Config is the configuration information for the lodstream cli.
type Config struct {

	// Manifest is the mesh manifest file describing the objects of the
	// scene and the levels of detail of each.
	Manifest string `posarg:"0"`

	// URL is the content server to fetch level payloads from, over
	// http(s):// or ws(s)://. If empty, payloads are simulated from
	// the sizes in the manifest at the simulated Bandwidth.
	URL string

	// Strategy is the scheduling strategy to run.
	Strategy strategy.Strategies `default:"Hybrid2"`

	// Metric is the utility metric used to score objects.
	Metric metric.Metrics `default:"VisiblePotential"`

	// Ticks is the number of scheduling ticks in the session. The
	// viewpoint completes one full orbit of the scene over the session.
	Ticks int `default:"100"`

	// TickSeconds is the simulated wall time between ticks.
	TickSeconds float32 `default:"0.1"`

	// Bandwidth is the simulated transfer rate, in bytes per second,
	// used when no URL is given.
	Bandwidth float32 `default:"1e6"`

	// Horizon is the future time offset, in seconds, at which
	// near-term visibility is valued.
	Horizon float32 `default:"10"`

	// Buffer is the buffering interval, in seconds, covered by the
	// per-tick byte budget of the budgeted strategies.
	Buffer float32 `default:"2"`

	// Immersive uses an immersive (HMD) viewpoint instead of a
	// desktop one.
	Immersive bool
}

func main() { //types:skip
	opts := cli.DefaultOptions("lodstream", "Adaptive level-of-detail streaming for 3D mesh scenes.")
	cli.Run(opts, &Config{}, Run)
}

// Run streams the manifest through one simulated orbiting session and
// reports per-tick scheduling decisions.
func Run(c *Config) error { //cli:cmd -root
	mf, err := scene.OpenManifest(c.Manifest)
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(c, mf)
	if err != nil {
		return err
	}
	est := throughput.NewEstimator()
	ct := scene.NewCatalog(mf, est, fetcher, &sim.Decoder{})

	var cam viewpoint.Camera
	if c.Immersive {
		cam = viewpoint.NewImmersive()
	} else {
		cam = viewpoint.NewDesktop()
	}
	pd := viewpoint.NewPredictor(cam)
	pd.Clock = sessionClock(c.TickSeconds)

	sd := strategy.NewScheduler(est, pd)
	sd.Strategy = c.Strategy
	sd.Metric = c.Metric
	sd.Horizon = c.Horizon
	sd.BufferSeconds = c.Buffer

	ctx := context.Background()

	// base levels first, so every object has a displayed mesh for the
	// frustum partitions
	for _, ob := range ct.Objects {
		if _, err := ob.FetchLevel(ctx, 0); err != nil {
			return err
		}
	}

	center, radius := orbit(mf)
	slog.Info("session start", "objects", len(ct.Objects),
		"strategy", c.Strategy, "metric", c.Metric, "orbitRadius", radius)

	loaded := len(ct.Objects)
	for tick := range c.Ticks {
		ang := 2 * math32.Pi * float32(tick) / float32(c.Ticks)
		cam.Base().Pose.Pos = center.Add(
			math32.Vec3(radius*math32.Sin(ang), 0, radius*math32.Cos(ang)))
		cam.LookAt(center)
		cam.UpdateMatrix()
		pd.Observe()

		meshes, err := sd.Execute(ctx, ct)
		if err != nil {
			return err
		}
		loaded += len(meshes)
		if len(meshes) > 0 {
			logx.PrintlnDebug(fmt.Sprintf(
				"tick %d: %d levels loaded, bandwidth %.0f B/s, budget %.0f B",
				tick, len(meshes), est.Bandwidth(), est.Budget(c.Buffer)))
		}
		if ct.AllLoaded() {
			slog.Info("all levels loaded", "tick", tick)
			break
		}
	}
	slog.Info("session done", "levelsLoaded", loaded,
		"bandwidth", est.Bandwidth(), "decodeRate", est.DecodeRate())
	return nil
}

// newFetcher returns the fetcher for the configured content server,
// or a manifest-driven simulated one when no URL is given.
func newFetcher(c *Config, mf *scene.Manifest) (scene.Fetcher, error) {
	switch {
	case c.URL == "":
		sf := sim.FetcherFor(mf)
		sf.BytesPerSecond = c.Bandwidth
		return sf, nil
	case strings.HasPrefix(c.URL, "ws://"), strings.HasPrefix(c.URL, "wss://"):
		return fetch.Dial(c.URL)
	default:
		return fetch.NewHTTP(c.URL), nil
	}
}

// orbit returns the center and radius of a viewpoint orbit enclosing
// every object in the manifest.
func orbit(mf *scene.Manifest) (math32.Vector3, float32) {
	bb := math32.B3Empty()
	for _, oi := range mf.Objects {
		bb.ExpandByPoint(oi.Position)
	}
	center := bb.Center()
	radius := float32(1)
	for _, oi := range mf.Objects {
		if d := oi.Position.Sub(center).Length(); d > radius {
			radius = d
		}
	}
	return center, radius * 1.5
}

// sessionClock advances simulated time by one tick interval per call,
// decoupling viewpoint prediction from wall time.
func sessionClock(tickSeconds float32) func() time.Time {
	now := time.Unix(0, 0)
	step := time.Duration(float64(tickSeconds) * float64(time.Second))
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}
