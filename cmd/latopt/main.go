// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command latopt solves a lateral offset optimization problem described by
// a YAML file and writes the sampled trajectory as CSV.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/curioloop/latopt/slsqpfit"
	"github.com/curioloop/latopt/trajectory"
)

func main() {
	cmd := &cli.Command{
		Name:  "latopt",
		Usage: "Lateral offset trajectory optimization",
		Commands: []*cli.Command{
			{
				Name:  "solve",
				Usage: "Solve the problem described by a YAML config and emit trajectory samples",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML problem description",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "CSV output path, stdout when omitted",
					},
					&cli.IntFlag{
						Name:  "samples",
						Usage: "Number of sample intervals along the trajectory",
						Value: 100,
					},
				},
				Action: solve,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func solve(ctx context.Context, cmd *cli.Command) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	problem, err := cfg.spec().New()
	if err != nil {
		return err
	}

	res, err := slsqpfit.Solve(problem, cfg.options())
	if err != nil {
		return err
	}

	logger.Info("solve finished",
		zap.Bool("converged", res.Converged),
		zap.Int("status", int(res.Status)),
		zap.Int("iterations", res.Iterations),
		zap.Float64("objective", res.Objective),
	)
	if !res.Converged {
		logger.Warn("solver did not converge, emitting last reported solution")
	}

	traj := problem.Trajectory()

	out := io.Writer(os.Stdout)
	if path := cmd.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return writeSamples(out, traj, int(cmd.Int("samples")))
}

func writeSamples(w io.Writer, traj *trajectory.PiecewiseJerk, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", samples)
	}
	if _, err := fmt.Fprintln(w, "s,d,d_prime,d_pprime,d_ppprime"); err != nil {
		return err
	}
	total := traj.ParamLength()
	for i := 0; i <= samples; i++ {
		s := total * float64(i) / float64(samples)
		_, err := fmt.Fprintf(w, "%g,%g,%g,%g,%g\n", s,
			traj.Evaluate(0, s), traj.Evaluate(1, s),
			traj.Evaluate(2, s), traj.Evaluate(3, s))
		if err != nil {
			return err
		}
	}
	return nil
}
