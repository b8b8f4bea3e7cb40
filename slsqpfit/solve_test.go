// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slsqpfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioloop/latopt/lateral"
	"github.com/curioloop/latopt/nlp"
)

func TestSolveRequiresProblem(t *testing.T) {
	_, err := Solve(nil, Options{})
	require.Error(t, err)
}

func TestSolveLateral(t *testing.T) {
	const (
		n      = 5
		deltaS = 0.5
	)
	corridor := make([]nlp.Bound, n)
	for i := range corridor {
		corridor[i] = nlp.Bound{Lower: -1, Upper: 1}
	}
	spec := lateral.Spec{
		Init:     lateral.State{Offset: 0.5},
		DeltaS:   deltaS,
		Corridor: corridor,
	}
	problem, err := spec.New()
	require.NoError(t, err)

	res, err := Solve(problem, Options{Accuracy: 1e-8, MaxIterations: 200})
	require.NoError(t, err)
	require.True(t, res.Converged, "status %d after %d iterations", res.Status, res.Iterations)
	require.Len(t, res.X, 3*n)
	assert.Greater(t, res.Iterations, 0)

	// The equality rows must hold at the solution and every variable must
	// respect its box.
	g := make([]float64, 3*n)
	problem.Constraints(res.X, g)
	cb := problem.ConstraintBounds()
	for j, b := range cb {
		switch {
		case b.Lower == b.Upper:
			assert.InDelta(t, b.Lower, g[j], 1e-4, "equality row %d", j)
		default:
			assert.GreaterOrEqual(t, g[j], b.Lower-1e-4, "row %d lower", j)
			assert.LessOrEqual(t, g[j], b.Upper+1e-4, "row %d upper", j)
		}
	}
	for i, b := range problem.VariableBounds() {
		assert.GreaterOrEqual(t, res.X[i], b.Lower-1e-6, "variable %d lower", i)
		assert.LessOrEqual(t, res.X[i], b.Upper+1e-6, "variable %d upper", i)
	}

	// The zero-motion trajectory (every sample at the initial state) is
	// feasible and costs 5·2·0.5² = 2.5, so the optimum cannot exceed it.
	assert.Greater(t, res.Objective, 0.0)
	assert.LessOrEqual(t, res.Objective, 2.5+1e-9)

	traj := problem.Trajectory()
	require.NotNil(t, traj)
	require.Len(t, traj.Segments(), n-1)
	assert.InDelta(t, float64(n-1)*deltaS, traj.ParamLength(), 1e-12)
	for i := 0; i < n; i++ {
		s := math.Min(float64(i)*deltaS, traj.ParamLength())
		assert.InDelta(t, res.X[i], traj.Evaluate(0, s), 1e-3, "sample %d", i)
	}
}

func TestSolveFinalizesWithoutConvergence(t *testing.T) {
	corridor := []nlp.Bound{{Lower: -1, Upper: 1}, {Lower: -1, Upper: 1}, {Lower: -1, Upper: 1}}
	spec := lateral.Spec{
		Init:     lateral.State{Offset: 0.9},
		DeltaS:   0.5,
		Corridor: corridor,
	}
	problem, err := spec.New()
	require.NoError(t, err)

	res, err := Solve(problem, Options{MaxIterations: 1})
	require.NoError(t, err)

	// Finalize runs regardless of the termination status, so the trajectory
	// of the last reported point is always available.
	assert.NotNil(t, problem.Trajectory())
	if !res.Converged {
		assert.NotEqual(t, nlp.Succeeded, res.Status)
	}
}
