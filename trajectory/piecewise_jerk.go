// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trajectory

import (
	"fmt"
	"slices"
	"sort"
)

// Segment is the summary record of one appended piece.
type Segment struct {
	Jerk, Length float64
}

// PiecewiseJerk is an ordered, append-only sequence of constant-jerk
// segments forming a C²-continuous piecewise cubic trajectory. Each
// appended segment starts from the end state of the previous one.
//
// A PiecewiseJerk is not safe for concurrent use.
type PiecewiseJerk struct {
	segments []ConstantJerkSegment
	// ends[i] is the accumulated parameter at the end of segments[i].
	ends []float64
	// end state of the last segment, start state for the next append
	lastP, lastV, lastA float64
}

// NewPiecewiseJerk creates an empty trajectory starting at the state
// (position p, velocity v, acceleration a).
func NewPiecewiseJerk(p, v, a float64) *PiecewiseJerk {
	return &PiecewiseJerk{lastP: p, lastV: v, lastA: a}
}

// AppendSegment extends the trajectory by one constant-jerk piece of the
// given parameter length, chained from the current end state.
// Length must be positive.
func (t *PiecewiseJerk) AppendSegment(jerk, length float64) {
	if length <= 0 {
		panic(fmt.Sprintf("segment length %v must be positive", length))
	}
	seg := NewConstantJerkSegment(t.lastP, t.lastV, t.lastA, jerk, length)
	end := length
	if n := len(t.ends); n > 0 {
		end += t.ends[n-1]
	}
	t.segments = append(t.segments, seg)
	t.ends = append(t.ends, end)
	t.lastP, t.lastV, t.lastA = seg.EndPosition(), seg.EndVelocity(), seg.EndAcceleration()
}

// ParamLength returns the total parameter length of the trajectory.
func (t *PiecewiseJerk) ParamLength() float64 {
	if len(t.ends) == 0 {
		return 0
	}
	return t.ends[len(t.ends)-1]
}

// Evaluate returns the order-th derivative at parameter s ∈ [0, ParamLength].
// Panics when the trajectory is empty or s is out of range.
func (t *PiecewiseJerk) Evaluate(order int, s float64) float64 {
	if len(t.segments) == 0 {
		panic("evaluate on empty trajectory")
	}
	if s < 0 || s > t.ParamLength() {
		panic(fmt.Sprintf("trajectory parameter %v out of range [0, %v]", s, t.ParamLength()))
	}
	// First segment whose accumulated end covers s.
	i := sort.SearchFloat64s(t.ends, s)
	if i == len(t.segments) {
		i--
	}
	start := 0.0
	if i > 0 {
		start = t.ends[i-1]
	}
	return t.segments[i].Evaluate(order, s-start)
}

// Segments returns a copy of the appended segment summaries in order.
func (t *PiecewiseJerk) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	for i, seg := range t.segments {
		out[i] = Segment{Jerk: seg.Jerk(), Length: seg.Length()}
	}
	return out
}

// Clone returns an independent copy of the trajectory.
func (t *PiecewiseJerk) Clone() *PiecewiseJerk {
	return &PiecewiseJerk{
		segments: slices.Clone(t.segments),
		ends:     slices.Clone(t.ends),
		lastP:    t.lastP,
		lastV:    t.lastV,
		lastA:    t.lastA,
	}
}
