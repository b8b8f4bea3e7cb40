// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/curioloop/latopt/lateral"
	"github.com/curioloop/latopt/nlp"
	"github.com/curioloop/latopt/slsqpfit"
)

type boundConfig struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

type initConfig struct {
	Offset        float64 `yaml:"offset"`
	Rate          float64 `yaml:"rate"`
	CurvatureRate float64 `yaml:"curvature_rate"`
}

type weightsConfig struct {
	Offset        float64 `yaml:"offset"`
	Rate          float64 `yaml:"rate"`
	CurvatureRate float64 `yaml:"curvature_rate"`
	Centering     float64 `yaml:"centering"`
}

type solverConfig struct {
	Accuracy      float64 `yaml:"accuracy"`
	MaxIterations int     `yaml:"max_iterations"`
}

// problemConfig is the YAML description of one lateral optimization run.
type problemConfig struct {
	DeltaS     float64        `yaml:"delta_s"`
	Init       initConfig     `yaml:"init"`
	Corridor   []boundConfig  `yaml:"corridor"`
	Weights    *weightsConfig `yaml:"weights"`
	StateBound float64        `yaml:"state_bound"`
	JerkLimit  float64        `yaml:"jerk_limit"`
	Solver     solverConfig   `yaml:"solver"`
}

func loadConfig(path string) (*problemConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(raw)
}

func parseConfig(raw []byte) (*problemConfig, error) {
	var cfg problemConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Corridor) == 0 {
		return nil, errors.New("config requires a non-empty corridor")
	}
	return &cfg, nil
}

func (c *problemConfig) spec() *lateral.Spec {
	corridor := make([]nlp.Bound, len(c.Corridor))
	for i, b := range c.Corridor {
		corridor[i] = nlp.Bound{Lower: b.Lower, Upper: b.Upper}
	}
	spec := &lateral.Spec{
		Init: lateral.State{
			Offset:        c.Init.Offset,
			Rate:          c.Init.Rate,
			CurvatureRate: c.Init.CurvatureRate,
		},
		DeltaS:     c.DeltaS,
		Corridor:   corridor,
		StateBound: c.StateBound,
		JerkLimit:  c.JerkLimit,
	}
	if c.Weights != nil {
		spec.Weights = &lateral.Weights{
			Offset:        c.Weights.Offset,
			Rate:          c.Weights.Rate,
			CurvatureRate: c.Weights.CurvatureRate,
			Centering:     c.Weights.Centering,
		}
	}
	return spec
}

func (c *problemConfig) options() slsqpfit.Options {
	return slsqpfit.Options{
		Accuracy:      c.Solver.Accuracy,
		MaxIterations: c.Solver.MaxIterations,
	}
}
