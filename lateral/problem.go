// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lateral formulates the lateral offset trajectory of a vehicle
// following a reference path as a sparse nonlinear program.
//
// The path is sampled every Δs meters of arc length. At sample i the
// lateral state is (dᵢ, d′ᵢ, d″ᵢ): offset from the reference line and its
// first two arc-length derivatives. The variable vector stacks the three
// blocks as
//
//	𝐱 = [d₀ ··· dₙ₋₁ | d′₀ ··· d′ₙ₋₁ | d″₀ ··· d″ₙ₋₁]
//
// and the problem reads
//
//	minimize ∑ 𝑤d·dᵢ² + 𝑤d′·d′ᵢ² + 𝑤d″·d″ᵢ² + 𝑤c·(dᵢ-𝑐ᵢ)²
//
// subject to, for every consecutive sample pair,
//   - |d″ᵢ₊₁ - d″ᵢ| ≤ d‴ₘₐₓ·Δs
//   - d′ᵢ + ½Δs·(d″ᵢ + d″ᵢ₊₁) = d′ᵢ₊₁
//   - dᵢ + Δs·d′ᵢ + ⅓Δs²·d″ᵢ + ⅙Δs²·d″ᵢ₊₁ = dᵢ₊₁
//
// plus the initial state equalities at sample 0, where 𝑐ᵢ is the midpoint
// of the i-th corridor bound. The continuity rows are the exact closed-form
// end states of a constant-jerk segment spanning the pair, so every
// constraint is affine in 𝐱 and the Jacobian entries are constants.
//
// Problem implements nlp.Problem; any compliant solver may drive it.
// Once the solver terminates, Finalize materializes the solution as a
// piecewise constant-jerk trajectory.
package lateral

import (
	"errors"
	"slices"

	"github.com/curioloop/latopt/nlp"
	"github.com/curioloop/latopt/trajectory"
)

const (
	defaultWeight = 1.0
	// defaultStateBound is the symmetric bound applied to the rate and
	// curvature-rate variables when no limit is supplied. An engineering
	// constant keeping the solver in a sane region, not a vehicle limit.
	defaultStateBound = 10.0
	// defaultJerkLimit caps |d‴|, the curvature-rate change per unit of
	// arc length, between consecutive samples.
	defaultJerkLimit = 0.1
)

// State is the lateral state (d, d′, d″) at one arc-length sample.
type State struct {
	Offset        float64 // d, lateral offset from the reference line
	Rate          float64 // d′, first arc-length derivative
	CurvatureRate float64 // d″, second arc-length derivative
}

// Weights are the nonnegative objective weights.
type Weights struct {
	Offset        float64 // 𝑤d, penalizes offset magnitude
	Rate          float64 // 𝑤d′, penalizes rate magnitude
	CurvatureRate float64 // 𝑤d″, penalizes curvature-rate magnitude
	Centering     float64 // 𝑤c, pulls the offset toward the corridor center
}

// Spec specifies one lateral optimization problem.
type Spec struct {
	// The boundary condition at sample 0, satisfied exactly.
	Init State
	// The fixed arc-length spacing between samples.
	DeltaS float64
	// One admissible offset interval per sample; its size determines the
	// sample count. Corridor feasibility (Lower ≤ Upper) is the caller's
	// responsibility.
	Corridor []nlp.Bound
	// Optional objective weights, all 1.0 when nil.
	Weights *Weights
	// Optional symmetric bound for the rate and curvature-rate variables,
	// defaultStateBound when 0.
	StateBound float64
	// Optional limit for |d‴|, defaultJerkLimit when 0.
	JerkLimit float64
}

// New validates the spec and builds the problem definition.
// The Jacobian and Hessian sparsity patterns are computed here once and
// are immutable afterwards.
func (s *Spec) New() (*Problem, error) {

	w := Weights{defaultWeight, defaultWeight, defaultWeight, defaultWeight}
	if s.Weights != nil {
		w = *s.Weights
	}
	stateBound, jerkLimit := s.StateBound, s.JerkLimit
	if stateBound == 0 {
		stateBound = defaultStateBound
	}
	if jerkLimit == 0 {
		jerkLimit = defaultJerkLimit
	}

	var err error
	switch {
	case s.DeltaS <= 0:
		err = errors.New("sample spacing must greater than 0")
	case len(s.Corridor) == 0:
		err = errors.New("corridor bounds are required")
	case w.Offset < 0 || w.Rate < 0 || w.CurvatureRate < 0 || w.Centering < 0:
		err = errors.New("objective weights must not less than 0")
	case stateBound <= 0:
		err = errors.New("state bound must greater than 0")
	case jerkLimit <= 0:
		err = errors.New("jerk limit must greater than 0")
	}
	if err != nil {
		return nil, err
	}

	p := &Problem{
		n:          len(s.Corridor),
		deltaS:     s.DeltaS,
		init:       s.Init,
		corridor:   slices.Clone(s.Corridor),
		weights:    w,
		stateBound: stateBound,
		jerkLimit:  jerkLimit,
	}
	p.jacPattern = p.buildJacobianPattern()
	p.hessPattern = p.buildHessianPattern()
	return p, nil
}

// Problem is the lateral offset problem definition.
//
// A Problem is constructed once per planning invocation, queried read-only
// by the solver, mutated once at Finalize, and discarded after the
// trajectory is extracted. It must not be shared across concurrent runs.
type Problem struct {
	n      int // sample count
	deltaS float64
	init   State

	corridor   []nlp.Bound
	weights    Weights
	stateBound float64
	jerkLimit  float64

	jacPattern  []nlp.Coordinate
	hessPattern []nlp.Coordinate

	traj *trajectory.PiecewiseJerk // built at Finalize
}

// Variable layout: the offset block starts at 0, the rate block at n and
// the curvature-rate block at 2n.

func (p *Problem) rateAt(i int) int { return p.n + i }

func (p *Problem) curvRateAt(i int) int { return 2*p.n + i }

// Constraint layout: n-1 curvature-rate continuity rows starting at 0,
// n-1 rate continuity rows, n-1 position continuity rows, then the 3
// initial-state equality rows.

func (p *Problem) rateRow(i int) int { return (p.n - 1) + i }

func (p *Problem) posRow(i int) int { return 2*(p.n-1) + i }

func (p *Problem) initRow() int { return 3 * (p.n - 1) }

func (p *Problem) checkDim(x []float64) {
	if len(x) != 3*p.n {
		panic("x dimension not match problem")
	}
}

// Sizes reports n = m = 3N. The Jacobian carries 2, 4 and 5 nonzeros per
// continuity row and 1 per initial-state row; the Hessian is diagonal.
func (p *Problem) Sizes() nlp.Sizes {
	return nlp.Sizes{
		Variables:        3 * p.n,
		Constraints:      3 * p.n,
		JacobianNonZeros: len(p.jacPattern),
		HessianNonZeros:  len(p.hessPattern),
	}
}

// VariableBounds bounds each offset by its corridor interval and the rate
// and curvature-rate variables by the symmetric state bound.
func (p *Problem) VariableBounds() []nlp.Bound {
	b := make([]nlp.Bound, 3*p.n)
	copy(b, p.corridor)
	free := nlp.Bound{Lower: -p.stateBound, Upper: p.stateBound}
	for i := 0; i < p.n; i++ {
		b[p.rateAt(i)] = free
		b[p.curvRateAt(i)] = free
	}
	return b
}

// ConstraintBounds bounds the curvature-rate continuity rows by
// ±d‴ₘₐₓ·Δs; every other row is an equality.
func (p *Problem) ConstraintBounds() []nlp.Bound {
	g := make([]nlp.Bound, 3*p.n)
	lim := p.jerkLimit * p.deltaS
	for i := 0; i+1 < p.n; i++ {
		g[i] = nlp.Bound{Lower: -lim, Upper: lim}
	}
	return g
}

// StartingPoint fills x with zeros except for the initial state at the
// head of each block. This problem always starts from a primal-only guess:
// requesting dual initialization panics.
func (p *Problem) StartingPoint(x, zLower, zUpper, lambda []float64) {
	if zLower != nil || zUpper != nil || lambda != nil {
		panic("starting point is primal only")
	}
	p.checkDim(x)
	clear(x)
	x[0] = p.init.Offset
	x[p.rateAt(0)] = p.init.Rate
	x[p.curvRateAt(0)] = p.init.CurvatureRate
}
