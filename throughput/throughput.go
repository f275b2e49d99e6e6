// Copyright (c) 2025, Lodstream Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package throughput maintains rolling estimates of download bandwidth
// and decode speed, measured from recently completed level fetches.
package throughput

import "sync"

const (
	// DefaultRate is the rate estimate returned before any samples have
	// been recorded. It bootstraps strategy behavior at session start,
	// when no fetch has completed yet.
	DefaultRate = 100

	// WindowSize is the number of most recent samples retained in each
	// rolling window. Older samples are evicted.
	WindowSize = 10
)

// Estimator maintains rolling averages of download bandwidth and decode
// rate, both in bytes per second. One Estimator is shared across the
// whole session: throughput is a property of the network path and the
// decoder, not of any one object. It is safe for concurrent use by
// in-flight fetches.
type Estimator struct {
	mu        sync.Mutex
	bandwidth []float32
	decode    []float32
}

// NewEstimator returns a new [Estimator] with empty sample windows.
func NewEstimator() *Estimator {
	return &Estimator{
		bandwidth: make([]float32, 0, WindowSize),
		decode:    make([]float32, 0, WindowSize),
	}
}

// RecordBandwidth records a download bandwidth sample in bytes per
// second, evicting the oldest sample once the window is full.
func (es *Estimator) RecordBandwidth(bytesPerSecond float32) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.bandwidth = push(es.bandwidth, bytesPerSecond)
}

// RecordDecodeRate records a decode rate sample in bytes per second,
// evicting the oldest sample once the window is full.
func (es *Estimator) RecordDecodeRate(bytesPerSecond float32) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.decode = push(es.decode, bytesPerSecond)
}

// Bandwidth returns the arithmetic mean of the recorded bandwidth
// samples, or [DefaultRate] if none have been recorded.
func (es *Estimator) Bandwidth() float32 {
	es.mu.Lock()
	defer es.mu.Unlock()
	return mean(es.bandwidth)
}

// DecodeRate returns the arithmetic mean of the recorded decode rate
// samples, or [DefaultRate] if none have been recorded.
func (es *Estimator) DecodeRate() float32 {
	es.mu.Lock()
	defer es.mu.Unlock()
	return mean(es.decode)
}

// Budget returns the number of bytes that can be fetched and decoded
// within the given buffering interval at the current rate estimates:
// the harmonic mean of bandwidth and decode rate times bufferSeconds.
// It is recomputed fresh on each call, so each scheduling tick sees the
// current estimate.
func (es *Estimator) Budget(bufferSeconds float32) float32 {
	return HarmonicMean(es.Bandwidth(), es.DecodeRate()) * bufferSeconds
}

// HarmonicMean returns the harmonic mean of a and b, which is the
// effective combined rate of a fetch pipelined into a decode.
func HarmonicMean(a, b float32) float32 {
	if a+b == 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

func push(window []float32, sample float32) []float32 {
	if len(window) >= WindowSize {
		window = append(window[:0], window[1:]...)
	}
	return append(window, sample)
}

func mean(window []float32) float32 {
	if len(window) == 0 {
		return DefaultRate
	}
	sum := float32(0)
	for _, s := range window {
		sum += s
	}
	return sum / float32(len(window))
}
