package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/musclesoft/dan3/internal/codec"
	"github.com/musclesoft/dan3/internal/golomb"
	"github.com/musclesoft/dan3/internal/telemetry"
)

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "compress a file with the DAN3 codec",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Required: true, Usage: "input file"},
			&cli.StringFlag{Name: "out", Required: true, Usage: "output file"},
			&cli.IntFlag{Name: "max-offset-bits", Value: 16, Usage: "9..16, narrows the offset regimes considered"},
			&cli.BoolFlag{Name: "rle", Value: true, Usage: "enable the literal-run relaxation"},
			&cli.BoolFlag{Name: "fast", Value: false, Usage: "enable the length-1-run fast path"},
			&cli.BoolFlag{Name: "verify", Value: true, Usage: "round-trip check before writing output (recovered from original_source's verification pass)"},
			&cli.StringFlag{Name: "profile", Usage: "TOML batch profile file; overrides the flags above per-profile"},
		},
		Action: runEncode,
	}
}

func runEncode(ctx context.Context, cmd *cli.Command) error {
	log := telemetry.New(os.Stderr)

	if profilePath := cmd.String("profile"); profilePath != "" {
		return runEncodeBatch(cmd, profilePath, log)
	}

	opts := codec.Options{
		MaxOffsetBits: cmd.Int("max-offset-bits"),
		RLE:           cmd.Bool("rle"),
		Fast:          cmd.Bool("fast"),
	}
	return encodeOne(cmd.String("in"), cmd.String("out"), opts, cmd.Bool("verify"), log)
}

func runEncodeBatch(cmd *cli.Command, profilePath string, log *telemetry.Logger) error {
	bf, err := loadBatchFile(profilePath)
	if err != nil {
		return err
	}
	in := cmd.String("in")
	for _, p := range bf.Profiles {
		if err := p.ensureOutDir(); err != nil {
			return err
		}
		out := p.OutDir + "/" + p.Name + ".dan3"
		if err := encodeOne(in, out, p.options(), cmd.Bool("verify"), log); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return nil
}

func encodeOne(inPath, outPath string, opts codec.Options, verify bool, log *telemetry.Logger) error {
	if opts.MaxOffsetBits < golomb.BitOffsetMin || opts.MaxOffsetBits > golomb.BitOffsetMax {
		return fmt.Errorf("max-offset-bits must be in %d..%d, got %d", golomb.BitOffsetMin, golomb.BitOffsetMax, opts.MaxOffsetBits)
	}

	src, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	start := time.Now()
	compressed, err := codec.Encode(src, opts)
	if err != nil {
		log.Error(err)
		return err
	}
	elapsed := time.Since(start)

	if verify {
		roundTrip, err := codec.Decode(compressed)
		if err != nil {
			log.Error(err)
			return err
		}
		if !bytes.Equal(roundTrip, src) {
			err := codec.ErrRoundTripMismatch
			log.Error(err)
			return err
		}
	}

	if err := os.WriteFile(outPath, compressed, 0o644); err != nil {
		return err
	}

	regime := 0
	if len(src) > 0 {
		regime = selectorRegime(compressed)
	}
	log.LogEncode(telemetry.EncodeResult{
		InputBytes:    len(src),
		OutputBytes:   len(compressed),
		Regime:        regime,
		MaxOffsetBits: opts.MaxOffsetBits,
		RLE:           opts.RLE,
		Fast:          opts.Fast,
		Elapsed:       elapsed,
	})
	return nil
}

// selectorRegime re-reads the regime selector from an already-encoded
// stream for reporting purposes, rather than plumbing it back out of
// codec.Encode's return value.
func selectorRegime(compressed []byte) int {
	regime := 0
	for _, b := range compressed {
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if b&mask == 0 {
				return regime
			}
			regime++
		}
	}
	return regime
}
