// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lateral

import (
	"github.com/curioloop/latopt/nlp"
	"github.com/curioloop/latopt/trajectory"
)

// Finalize materializes the solution as a piecewise constant-jerk
// trajectory: one segment of length Δs per consecutive sample pair, with
// the jerk implied by the endpoint curvature-rates. The trajectory is
// rebuilt from scratch on every call, so repeated finalization with the
// same solution yields identical segment sequences.
//
// The status is recorded but not validated here: a non-optimal termination
// still produces a trajectory from the last reported solution, and judging
// convergence quality is the caller's responsibility. Multipliers are not
// consumed.
func (p *Problem) Finalize(status nlp.Status, x, lambda []float64, objective float64) {
	p.checkDim(x)
	traj := trajectory.NewPiecewiseJerk(p.init.Offset, p.init.Rate, p.init.CurvatureRate)
	for i := 0; i+1 < p.n; i++ {
		jerk := (x[p.curvRateAt(i+1)] - x[p.curvRateAt(i)]) / p.deltaS
		traj.AppendSegment(jerk, p.deltaS)
	}
	p.traj = traj
}

// Trajectory returns a caller-owned copy of the finalized trajectory,
// or nil when Finalize has not been called.
func (p *Problem) Trajectory() *trajectory.PiecewiseJerk {
	if p.traj == nil {
		return nil
	}
	return p.traj.Clone()
}
