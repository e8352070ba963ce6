// Package main provides the secmem diagnostic command.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hupe1980/secmem/cmd/secmem/commands"
)

func main() {
	cmd := &cli.Command{
		Name:    "secmem",
		Usage:   "Verify and measure secure memory erasure on this platform",
		Version: "0.1.0",
		Commands: []*cli.Command{
			{
				Name:  "selftest",
				Usage: "Exercise every component and verify erasure and allocation symmetry",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "backend",
						Aliases: []string{"b"},
						Usage:   "Allocator backend: 'heap' or 'offheap' (default from SECMEM_BACKEND)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSelfTest(ctx, os.Stdout, cmd.String("backend"), cmd.String("format"))
				},
			},
			{
				Name:  "bench",
				Usage: "Measure erase throughput",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "size",
						Aliases: []string{"s"},
						Value:   4096,
						Usage:   "Buffer size in bytes",
					},
					&cli.IntFlag{
						Name:    "iterations",
						Aliases: []string{"n"},
						Value:   100000,
						Usage:   "Number of erase calls",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunBench(ctx, os.Stdout, cmd.Int("size"), cmd.Int("iterations"))
				},
			},
			{
				Name:  "metrics",
				Usage: "Run the self-test workload and print the collected metrics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "exporter",
						Aliases: []string{"e"},
						Usage:   "Metrics exporter: 'prometheus' or 'otel' (default from SECMEM_METRICS_EXPORTER)",
					},
					&cli.StringFlag{
						Name:  "backend",
						Usage: "Allocator backend: 'heap' or 'offheap' (default from SECMEM_BACKEND)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMetrics(ctx, os.Stdout, cmd.String("exporter"), cmd.String("backend"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
