// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trajectory provides one-dimensional constant-jerk trajectory
// pieces with closed-form end states, and an append-only piecewise
// trajectory assembled from them.
package trajectory

import "fmt"

// ConstantJerkSegment is a cubic trajectory piece over a fixed parameter
// step, fully determined by its start state (position, velocity,
// acceleration) and one constant third-derivative value:
//
//	p(s) = p₀ + v₀s + ½a₀s² + ⅙js³
//	v(s) = v₀ + a₀s + ½js²
//	a(s) = a₀ + js
//
// The end state is evaluated in closed form at construction, so chaining
// segments introduces no discretization error.
type ConstantJerkSegment struct {
	p0, v0, a0 float64
	jerk       float64
	length     float64
	p1, v1, a1 float64
}

// NewConstantJerkSegment integrates the constant-jerk motion starting at
// (p0, v0, a0) over the given parameter length.
func NewConstantJerkSegment(p0, v0, a0, jerk, length float64) ConstantJerkSegment {
	s := ConstantJerkSegment{
		p0: p0, v0: v0, a0: a0,
		jerk:   jerk,
		length: length,
	}
	s.a1 = a0 + jerk*length
	s.v1 = v0 + a0*length + 0.5*jerk*length*length
	s.p1 = p0 + v0*length + 0.5*a0*length*length + jerk*length*length*length/6.0
	return s
}

func (s ConstantJerkSegment) StartPosition() float64 { return s.p0 }

func (s ConstantJerkSegment) StartVelocity() float64 { return s.v0 }

func (s ConstantJerkSegment) StartAcceleration() float64 { return s.a0 }

func (s ConstantJerkSegment) EndPosition() float64 { return s.p1 }

func (s ConstantJerkSegment) EndVelocity() float64 { return s.v1 }

func (s ConstantJerkSegment) EndAcceleration() float64 { return s.a1 }

// Jerk returns the constant third derivative of the segment.
func (s ConstantJerkSegment) Jerk() float64 { return s.jerk }

// Length returns the parameter length of the segment.
func (s ConstantJerkSegment) Length() float64 { return s.length }

// Evaluate returns the order-th derivative of the segment at parameter
// ds ∈ [0, Length]. Order 0 is position, 3 is the constant jerk.
// Out-of-range order or parameter panics.
func (s ConstantJerkSegment) Evaluate(order int, ds float64) float64 {
	if ds < 0 || ds > s.length {
		panic(fmt.Sprintf("segment parameter %v out of range [0, %v]", ds, s.length))
	}
	switch order {
	case 0:
		return s.p0 + s.v0*ds + 0.5*s.a0*ds*ds + s.jerk*ds*ds*ds/6.0
	case 1:
		return s.v0 + s.a0*ds + 0.5*s.jerk*ds*ds
	case 2:
		return s.a0 + s.jerk*ds
	case 3:
		return s.jerk
	}
	panic(fmt.Sprintf("derivative order %d not supported", order))
}
