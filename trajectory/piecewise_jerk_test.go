// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPiecewiseJerkChaining(t *testing.T) {
	traj := NewPiecewiseJerk(0.5, 0, -0.1)
	traj.AppendSegment(0.2, 1.0)
	traj.AppendSegment(-0.4, 0.5)
	traj.AppendSegment(0.1, 2.0)

	require.InDelta(t, 3.5, traj.ParamLength(), 1e-12)

	// The trajectory is C²-continuous: position, velocity and acceleration
	// agree across each knot, evaluated from either side.
	for _, knot := range []float64{1.0, 1.5} {
		const eps = 1e-9
		for order := 0; order <= 2; order++ {
			left := traj.Evaluate(order, knot-eps)
			right := traj.Evaluate(order, knot+eps)
			assert.InDelta(t, left, right, 1e-6, "order %d at knot %v", order, knot)
		}
	}

	// Start state is preserved.
	assert.InDelta(t, 0.5, traj.Evaluate(0, 0), 1e-12)
	assert.InDelta(t, 0.0, traj.Evaluate(1, 0), 1e-12)
	assert.InDelta(t, -0.1, traj.Evaluate(2, 0), 1e-12)
}

func TestPiecewiseJerkSegments(t *testing.T) {
	traj := NewPiecewiseJerk(0, 0, 0)
	traj.AppendSegment(0.3, 1.0)
	traj.AppendSegment(-0.3, 1.0)

	want := []Segment{{Jerk: 0.3, Length: 1.0}, {Jerk: -0.3, Length: 1.0}}
	assert.Equal(t, want, traj.Segments())

	// The returned slice is a copy.
	got := traj.Segments()
	got[0].Jerk = 99
	assert.Equal(t, want, traj.Segments())
}

func TestPiecewiseJerkClone(t *testing.T) {
	traj := NewPiecewiseJerk(0, 1, 0)
	traj.AppendSegment(0.1, 1.0)

	clone := traj.Clone()
	clone.AppendSegment(0.2, 1.0)

	assert.Len(t, traj.Segments(), 1)
	assert.Len(t, clone.Segments(), 2)
	assert.InDelta(t, traj.Evaluate(0, 1.0), clone.Evaluate(0, 1.0), 1e-12)
}

func TestPiecewiseJerkPanics(t *testing.T) {
	traj := NewPiecewiseJerk(0, 0, 0)

	require.Panics(t, func() { traj.Evaluate(0, 0) })
	require.Panics(t, func() { traj.AppendSegment(0.1, 0) })

	traj.AppendSegment(0.1, 1.0)
	require.Panics(t, func() { traj.Evaluate(0, 1.5) })
	require.Panics(t, func() { traj.Evaluate(0, -0.5) })
}
