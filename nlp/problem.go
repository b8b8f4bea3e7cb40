// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nlp defines the solver-facing contract of a sparse nonlinear
// program. A Problem describes
//
//	minimize 𝒇(𝐱) subject to
//	  - 𝒈𝑳ⱼ ≤ 𝒈ⱼ(𝐱) ≤ 𝒈𝑼ⱼ (j = 1 ··· m)
//	  - 𝒍ᵢ ≤ 𝐱ᵢ ≤ 𝒖ᵢ (i = 1 ··· n)
//
// and exposes the objective, its gradient, the constraint residuals and the
// sparse constraint Jacobian and Lagrangian Hessian to a generic solver.
// The package carries no solver of its own: any compliant solver may drive
// a Problem, and an adapter binds the contract to a concrete implementation.
package nlp

// Sizes describes the dimensions of a sparse nonlinear program.
type Sizes struct {
	// The number of optimization variables n.
	Variables int
	// The number of general constraints m.
	Constraints int
	// The number of structural nonzeros in the m×n constraint Jacobian.
	JacobianNonZeros int
	// The number of structural nonzeros in the lower triangle of the
	// n×n Lagrangian Hessian.
	HessianNonZeros int
}

// Bound represents the bounds for a variable or a constraint row.
// An equality constraint has Lower == Upper.
type Bound struct {
	Lower, Upper float64
}

// Coordinate is the (row, column) position of a structural nonzero.
// Indices are 0-based.
type Coordinate struct {
	Row, Col int
}

// Status reports how the solver terminated.
type Status int

const (
	// Succeeded the solver converged to the requested accuracy.
	Succeeded Status = iota
	// MaxIterExceeded the iteration limit was reached before convergence.
	MaxIterExceeded
	// Infeasible the solver judged the constraints incompatible.
	Infeasible
	// Failed the solver stopped for any other reason.
	Failed
)

// Problem is the problem definition consumed by a sparse NLP solver.
//
// All evaluation methods are pure with respect to the problem state and
// must be driven sequentially within one optimization run. Dimension or
// count mismatches indicate a broken solver integration and panic.
type Problem interface {

	// Sizes reports the fixed problem dimensions.
	Sizes() Sizes

	// VariableBounds returns one bound per variable.
	VariableBounds() []Bound

	// ConstraintBounds returns one bound per constraint row.
	ConstraintBounds() []Bound

	// StartingPoint fills x with the primal initial guess.
	// Dual initial guesses are not supported: zLower, zUpper and lambda
	// must be nil, otherwise the call panics.
	StartingPoint(x, zLower, zUpper, lambda []float64)

	// Objective evaluates 𝒇(𝐱).
	Objective(x []float64) float64

	// Gradient fills grad with 𝜵𝒇(𝐱).
	Gradient(x, grad []float64)

	// Constraints fills g with the m constraint residuals 𝒈(𝐱).
	Constraints(x, g []float64)

	// JacobianStructure returns the fixed sparsity pattern of the
	// constraint Jacobian. The returned slice must not be mutated.
	JacobianStructure() []Coordinate

	// JacobianValues fills values with the Jacobian entries in the same
	// order as JacobianStructure. len(values) must equal the structure
	// length, otherwise the call panics.
	JacobianValues(x, values []float64)

	// HessianStructure returns the fixed sparsity pattern of the
	// Lagrangian Hessian lower triangle.
	HessianStructure() []Coordinate

	// HessianValues fills values with the Hessian entries of
	// objFactor·𝜵²𝒇(𝐱) + ∑𝛌ⱼ𝜵²𝒈ⱼ(𝐱) in structure order.
	HessianValues(x []float64, objFactor float64, lambda, values []float64)

	// Finalize is invoked exactly once when the solver terminates,
	// regardless of status, with the last reported solution.
	Finalize(status Status, x, lambda []float64, objective float64)
}
