// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slsqpfit binds an nlp.Problem to the SLSQP solver from
// github.com/curioloop/optimizer. The solver works with per-row scalar
// constraint functions and dense constraint normals, so the adapter splits
// each boxed constraint row into equality or inequality closures and
// scatters the sparse Jacobian into a dense matrix shared by all rows.
package slsqpfit

import (
	"errors"
	"math"

	"github.com/curioloop/optimizer/slsqp"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/latopt/nlp"
)

const (
	defaultAccuracy      = 1e-6
	defaultMaxIterations = 100
	// defaultInfinity marks variable and constraint bounds beyond which a
	// bound is treated as absent.
	defaultInfinity = 1e19
)

// Options configures the solver run. Zero fields take the defaults above.
type Options struct {
	Accuracy      float64
	MaxIterations int
	Infinity      float64
}

// Result reports the outcome of one optimization run.
type Result struct {
	Converged  bool       // whether the solver converged
	Status     nlp.Status // mapped termination status
	Objective  float64    // final objective value
	X          []float64  // final solution vector
	Iterations int        // iterations performed
}

// rowCache evaluates the full constraint vector and the dense Jacobian
// once per point. Every row closure shares one cache, so an m-row problem
// costs one Constraints and one JacobianValues call per solver query
// instead of m.
type rowCache struct {
	problem nlp.Problem
	pattern []nlp.Coordinate
	x       []float64 // last evaluated point, nil before the first call
	g       []float64
	vals    []float64
	jac     *mat.Dense
}

func newRowCache(p nlp.Problem, s nlp.Sizes) *rowCache {
	return &rowCache{
		problem: p,
		pattern: p.JacobianStructure(),
		g:       make([]float64, s.Constraints),
		vals:    make([]float64, s.JacobianNonZeros),
		jac:     mat.NewDense(max(s.Constraints, 1), s.Variables, nil),
	}
}

func (c *rowCache) at(x []float64) {
	if c.x != nil && floats.Equal(c.x, x) {
		return
	}
	c.x = append(c.x[:0], x...)
	c.problem.Constraints(x, c.g)
	c.problem.JacobianValues(x, c.vals)
	c.jac.Zero()
	for k, pos := range c.pattern {
		c.jac.Set(pos.Row, pos.Col, c.vals[k])
	}
}

// eqRow builds the equality closure gⱼ(𝐱) - target = 0.
func (c *rowCache) eqRow(j int, target float64) slsqp.Evaluation {
	return func(x, d []float64) float64 {
		c.at(x)
		if d != nil {
			mat.Row(d, j, c.jac)
		}
		return c.g[j] - target
	}
}

// ineqRow builds the inequality closure gⱼ(𝐱) - lower ≥ 0, or
// upper - gⱼ(𝐱) ≥ 0 when flipped.
func (c *rowCache) ineqRow(j int, bound float64, flipped bool) slsqp.Evaluation {
	return func(x, d []float64) float64 {
		c.at(x)
		if d != nil {
			mat.Row(d, j, c.jac)
			if flipped {
				floats.Scale(-1, d)
			}
		}
		if flipped {
			return bound - c.g[j]
		}
		return c.g[j] - bound
	}
}

// Solve runs the problem through SLSQP from its own starting point and
// finalizes it with the last reported solution, regardless of status.
func Solve(p nlp.Problem, opt Options) (*Result, error) {

	if p == nil {
		return nil, errors.New("problem is required")
	}
	if opt.Accuracy == 0 {
		opt.Accuracy = defaultAccuracy
	}
	if opt.MaxIterations == 0 {
		opt.MaxIterations = defaultMaxIterations
	}
	if opt.Infinity == 0 {
		opt.Infinity = defaultInfinity
	}

	sizes := p.Sizes()
	cache := newRowCache(p, sizes)

	var eq, neq []slsqp.Evaluation
	for j, b := range p.ConstraintBounds() {
		if b.Lower == b.Upper {
			eq = append(eq, cache.eqRow(j, b.Lower))
			continue
		}
		if b.Lower > -opt.Infinity {
			neq = append(neq, cache.ineqRow(j, b.Lower, false))
		}
		if b.Upper < opt.Infinity {
			neq = append(neq, cache.ineqRow(j, b.Upper, true))
		}
	}

	bounds := make([]slsqp.Bound, sizes.Variables)
	for i, b := range p.VariableBounds() {
		bounds[i] = slsqp.Bound{Lower: b.Lower, Upper: b.Upper}
	}

	object := func(x, g []float64) float64 {
		if g != nil {
			p.Gradient(x, g)
		}
		return p.Objective(x)
	}

	prob := slsqp.Problem{
		N:       sizes.Variables,
		Object:  object,
		EqCons:  eq,
		NeqCons: neq,
		Bounds:  bounds,
		BndInf:  opt.Infinity,
		Stop: slsqp.Termination{
			Accuracy:       opt.Accuracy,
			MaxIterations:  opt.MaxIterations,
			FEvalTolerance: math.NaN(),
			FDiffTolerance: math.NaN(),
			XDiffTolerance: math.NaN(),
		},
	}

	solver, err := prob.New()
	if err != nil {
		return nil, err
	}

	x0 := make([]float64, sizes.Variables)
	p.StartingPoint(x0, nil, nil, nil)

	r := solver.Fit(x0, solver.Init())

	status := nlp.Failed
	switch {
	case r.OK:
		status = nlp.Succeeded
	case r.Status == slsqp.SQPExceedMaxIter:
		status = nlp.MaxIterExceeded
	case r.Status == slsqp.ConsIncompatible:
		status = nlp.Infeasible
	}

	// SLSQP reports no multipliers; the problem contract tolerates nil.
	p.Finalize(status, r.X, nil, r.F)

	return &Result{
		Converged:  r.OK,
		Status:     status,
		Objective:  r.F,
		X:          r.X,
		Iterations: r.NumIter,
	}, nil
}
