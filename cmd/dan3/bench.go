package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/musclesoft/dan3/internal/codec"
	"github.com/musclesoft/dan3/internal/golomb"
	"github.com/musclesoft/dan3/internal/parser"
)

// benchCommand reproduces dan3final.c's lzss_slow verbose trail: it prints
// the compressed size under every regime the parser evaluated in its
// single pass, useful for picking max-offset-bits the way the teacher's
// stats block helped tune which command class to favor (SPEC_FULL.md).
func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "report per-regime compressed size for a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Required: true, Usage: "input file"},
			&cli.BoolFlag{Name: "rle", Value: true},
			&cli.BoolFlag{Name: "fast", Value: false},
		},
		Action: runBench,
	}
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	src, err := os.ReadFile(cmd.String("in"))
	if err != nil {
		return err
	}

	opts := parser.Options{
		MaxOffsetBits: golomb.BitOffsetMax,
		RLE:           cmd.Bool("rle"),
		Fast:          cmd.Bool("fast"),
	}
	result, err := parser.Parse(src, opts)
	if err != nil {
		return err
	}

	fmt.Printf("input: %d bytes\n", len(src))
	if result.N == 0 {
		fmt.Println("(empty input)")
		return nil
	}
	for r := 0; r < opts.NbrAllowed(); r++ {
		bits := result.Table.Bits(result.N-1, r)
		// Token bits plus the r+1 selector bits and the end marker.
		total := bits + r + 1 + golomb.BitGolombMax + 2
		fmt.Printf("regime %d (max-offset-bits=%2d): %8d bits -> %8d bytes\n",
			r, golomb.BitOffsetMin+r, bits, (total+7)/8)
	}
	compressed, err := codec.Encode(src, opts)
	if err != nil {
		return err
	}
	fmt.Printf("selected: regime %d, %d bytes\n", result.Regime, len(compressed))
	return nil
}
