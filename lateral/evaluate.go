// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lateral

import (
	"github.com/curioloop/latopt/nlp"
	"github.com/curioloop/latopt/trajectory"
)

func center(b nlp.Bound) float64 { return 0.5 * (b.Lower + b.Upper) }

// Objective evaluates the separable quadratic cost
//
//	∑ 𝑤d·dᵢ² + 𝑤d′·d′ᵢ² + 𝑤d″·d″ᵢ² + 𝑤c·(dᵢ-𝑐ᵢ)²
func (p *Problem) Objective(x []float64) float64 {
	p.checkDim(x)
	obj := 0.0
	w := p.weights
	for i := 0; i < p.n; i++ {
		d, dp, dpp := x[i], x[p.rateAt(i)], x[p.curvRateAt(i)]
		obj += d * d * w.Offset
		obj += dp * dp * w.Rate
		obj += dpp * dpp * w.CurvatureRate
		dist := d - center(p.corridor[i])
		obj += dist * dist * w.Centering
	}
	return obj
}

// Gradient fills grad with the exact componentwise gradient of Objective.
func (p *Problem) Gradient(x, grad []float64) {
	p.checkDim(x)
	p.checkDim(grad)
	w := p.weights
	for i := 0; i < p.n; i++ {
		d := x[i]
		grad[i] = 2*d*w.Offset + 2*(d-center(p.corridor[i]))*w.Centering
		grad[p.rateAt(i)] = 2 * x[p.rateAt(i)] * w.Rate
		grad[p.curvRateAt(i)] = 2 * x[p.curvRateAt(i)] * w.CurvatureRate
	}
}

// Constraints fills g block by block: for each consecutive sample pair the
// curvature-rate change, then the rate and position differences against the
// closed-form end state of the constant-jerk segment implied by the pair,
// and finally the initial-state equality rows.
func (p *Problem) Constraints(x, g []float64) {
	p.checkDim(x)
	if len(g) != 3*p.n {
		panic("g dimension not match problem")
	}

	for i := 0; i+1 < p.n; i++ {
		g[i] = x[p.curvRateAt(i+1)] - x[p.curvRateAt(i)]
	}

	for i := 0; i+1 < p.n; i++ {
		d0, v0, a0 := x[i], x[p.rateAt(i)], x[p.curvRateAt(i)]
		d1, v1, a1 := x[i+1], x[p.rateAt(i+1)], x[p.curvRateAt(i+1)]

		// The constant jerk implied by the endpoint curvature-rates.
		jerk := (a1 - a0) / p.deltaS
		seg := trajectory.NewConstantJerkSegment(d0, v0, a0, jerk, p.deltaS)

		g[p.rateRow(i)] = seg.EndVelocity() - v1
		g[p.posRow(i)] = seg.EndPosition() - d1
	}

	off := p.initRow()
	g[off] = x[0] - p.init.Offset
	g[off+1] = x[p.rateAt(0)] - p.init.Rate
	g[off+2] = x[p.curvRateAt(0)] - p.init.CurvatureRate
}
