// Command dan3 is the CLI front end for the DAN3 codec: encode, decode,
// and a per-regime benchmarking subcommand. It replaces the teacher's
// cmd/compress hand-rolled os.Args switch (compress.go's main()) with
// proper subcommands and flag parsing (SPEC_FULL.md's ambient CLI stack).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "dan3",
		Usage: "optimal-parse LZSS codec for small, repetitive byte blocks",
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			benchCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dan3:", err)
		os.Exit(1)
	}
}
