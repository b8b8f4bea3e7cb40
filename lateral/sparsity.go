// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lateral

import "github.com/curioloop/latopt/nlp"

// The constraints are affine in 𝐱, so the Jacobian values are constants
// and only the sparsity pattern depends on the problem size. Both patterns
// are built once by Spec.New and never change.

func (p *Problem) buildJacobianPattern() []nlp.Coordinate {
	pattern := make([]nlp.Coordinate, 0, 11*(p.n-1)+3)

	// d″ᵢ₊₁ - d″ᵢ
	for i := 0; i+1 < p.n; i++ {
		pattern = append(pattern,
			nlp.Coordinate{Row: i, Col: p.curvRateAt(i)},
			nlp.Coordinate{Row: i, Col: p.curvRateAt(i + 1)},
		)
	}

	// d′ᵢ - d′ᵢ₊₁ + ½Δs·(d″ᵢ + d″ᵢ₊₁)
	for i := 0; i+1 < p.n; i++ {
		row := p.rateRow(i)
		pattern = append(pattern,
			nlp.Coordinate{Row: row, Col: p.rateAt(i)},
			nlp.Coordinate{Row: row, Col: p.rateAt(i + 1)},
			nlp.Coordinate{Row: row, Col: p.curvRateAt(i)},
			nlp.Coordinate{Row: row, Col: p.curvRateAt(i + 1)},
		)
	}

	// dᵢ - dᵢ₊₁ + Δs·d′ᵢ + ⅓Δs²·d″ᵢ + ⅙Δs²·d″ᵢ₊₁
	for i := 0; i+1 < p.n; i++ {
		row := p.posRow(i)
		pattern = append(pattern,
			nlp.Coordinate{Row: row, Col: i},
			nlp.Coordinate{Row: row, Col: i + 1},
			nlp.Coordinate{Row: row, Col: p.rateAt(i)},
			nlp.Coordinate{Row: row, Col: p.curvRateAt(i)},
			nlp.Coordinate{Row: row, Col: p.curvRateAt(i + 1)},
		)
	}

	// initial state identity rows
	off := p.initRow()
	pattern = append(pattern,
		nlp.Coordinate{Row: off, Col: 0},
		nlp.Coordinate{Row: off + 1, Col: p.rateAt(0)},
		nlp.Coordinate{Row: off + 2, Col: p.curvRateAt(0)},
	)

	return pattern
}

// JacobianStructure returns the fixed nonzero positions, enumerated in
// constraint block order. The returned slice must not be mutated.
func (p *Problem) JacobianStructure() []nlp.Coordinate {
	return p.jacPattern
}

// JacobianValues writes the analytic constants in the same enumeration
// order as JacobianStructure. The values never depend on x.
func (p *Problem) JacobianValues(x, values []float64) {
	p.checkDim(x)
	if len(values) != len(p.jacPattern) {
		panic("jacobian values count not match structure")
	}

	ds := p.deltaS
	k := 0

	for i := 0; i+1 < p.n; i++ {
		values[k] = -1.0 // d″ᵢ
		values[k+1] = 1.0
		k += 2
	}

	for i := 0; i+1 < p.n; i++ {
		values[k] = 1.0 // d′ᵢ
		values[k+1] = -1.0
		values[k+2] = 0.5 * ds
		values[k+3] = 0.5 * ds
		k += 4
	}

	for i := 0; i+1 < p.n; i++ {
		values[k] = 1.0 // dᵢ
		values[k+1] = -1.0
		values[k+2] = ds
		values[k+3] = ds * ds / 3.0
		values[k+4] = ds * ds / 6.0
		k += 5
	}

	values[k] = 1.0
	values[k+1] = 1.0
	values[k+2] = 1.0
	k += 3

	if k != len(p.jacPattern) {
		panic("jacobian values count not match structure")
	}
}

// The objective is separable quadratic and the constraints are affine,
// so the Lagrangian Hessian is the constant diagonal of the objective,
// independent of the multipliers and the objective scale factor.

func (p *Problem) buildHessianPattern() []nlp.Coordinate {
	pattern := make([]nlp.Coordinate, 3*p.n)
	for i := range pattern {
		pattern[i] = nlp.Coordinate{Row: i, Col: i}
	}
	return pattern
}

// HessianStructure returns the identity-diagonal pattern.
func (p *Problem) HessianStructure() []nlp.Coordinate {
	return p.hessPattern
}

// HessianValues writes 2(𝑤d + 𝑤c) for each offset variable and 2𝑤d′, 2𝑤d″
// for the rate and curvature-rate variables. objFactor and lambda carry no
// information here and are ignored.
func (p *Problem) HessianValues(x []float64, objFactor float64, lambda, values []float64) {
	p.checkDim(x)
	if len(values) != len(p.hessPattern) {
		panic("hessian values count not match structure")
	}
	w := p.weights
	for i := 0; i < p.n; i++ {
		values[i] = 2 * (w.Offset + w.Centering)
		values[p.rateAt(i)] = 2 * w.Rate
		values[p.curvRateAt(i)] = 2 * w.CurvatureRate
	}
}
