// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioloop/latopt/trajectory"
)

const configYAML = `
delta_s: 0.5
init:
  offset: 0.3
  rate: -0.1
  curvature_rate: 0.02
corridor:
  - {lower: -1.0, upper: 1.0}
  - {lower: -0.5, upper: 0.5}
  - {lower: -0.5, upper: 1.5}
weights:
  offset: 2.0
  rate: 1.0
  curvature_rate: 1.0
  centering: 0.5
state_bound: 8.0
jerk_limit: 0.2
solver:
  accuracy: 1.0e-7
  max_iterations: 150
`

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(configYAML))
	require.NoError(t, err)

	spec := cfg.spec()
	assert.Equal(t, 0.5, spec.DeltaS)
	assert.Equal(t, 0.3, spec.Init.Offset)
	assert.Equal(t, -0.1, spec.Init.Rate)
	assert.Equal(t, 0.02, spec.Init.CurvatureRate)
	require.Len(t, spec.Corridor, 3)
	assert.Equal(t, -0.5, spec.Corridor[1].Lower)
	assert.Equal(t, 1.5, spec.Corridor[2].Upper)
	require.NotNil(t, spec.Weights)
	assert.Equal(t, 2.0, spec.Weights.Offset)
	assert.Equal(t, 0.5, spec.Weights.Centering)
	assert.Equal(t, 8.0, spec.StateBound)
	assert.Equal(t, 0.2, spec.JerkLimit)

	opts := cfg.options()
	assert.Equal(t, 1.0e-7, opts.Accuracy)
	assert.Equal(t, 150, opts.MaxIterations)

	// The parsed config must build a valid problem.
	_, err = spec.New()
	require.NoError(t, err)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig([]byte("delta_s: 1.0\ncorridor:\n  - {lower: -1, upper: 1}\n"))
	require.NoError(t, err)

	spec := cfg.spec()
	assert.Nil(t, spec.Weights)
	assert.Zero(t, spec.StateBound)
	assert.Zero(t, spec.JerkLimit)
}

func TestParseConfigRejectsEmptyCorridor(t *testing.T) {
	_, err := parseConfig([]byte("delta_s: 1.0\n"))
	require.Error(t, err)
}

func TestWriteSamples(t *testing.T) {
	traj := trajectory.NewPiecewiseJerk(0.5, 0, 0)
	traj.AppendSegment(0.1, 1.0)
	traj.AppendSegment(-0.1, 1.0)

	var buf bytes.Buffer
	require.NoError(t, writeSamples(&buf, traj, 10))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "s,d,d_prime,d_pprime,d_ppprime", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,0.5,"))

	require.Error(t, writeSamples(&buf, traj, 0))
}
