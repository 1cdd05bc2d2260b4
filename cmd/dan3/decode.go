package main

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/musclesoft/dan3/internal/codec"
	"github.com/musclesoft/dan3/internal/telemetry"
)

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "decompress a DAN3 file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Required: true, Usage: "compressed input file"},
			&cli.StringFlag{Name: "out", Required: true, Usage: "output file"},
		},
		Action: runDecode,
	}
}

func runDecode(ctx context.Context, cmd *cli.Command) error {
	log := telemetry.New(os.Stderr)

	src, err := os.ReadFile(cmd.String("in"))
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := codec.Decode(src)
	if err != nil {
		log.Error(err)
		return err
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(cmd.String("out"), out, 0o644); err != nil {
		return err
	}

	log.LogDecode(len(src), len(out), elapsed)
	return nil
}
