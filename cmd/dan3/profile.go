package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/musclesoft/dan3/internal/codec"
)

// Profile names a reusable Options preset plus an output directory for a
// batch job, the TOML-loadable equivalent of the teacher's hardcoded
// "songs 1..9" loop in compress.go's main().
type Profile struct {
	Name          string `toml:"name"`
	MaxOffsetBits int    `toml:"max_offset_bits"`
	RLE           bool   `toml:"rle"`
	Fast          bool   `toml:"fast"`
	OutDir        string `toml:"out_dir"`
}

// BatchFile is the top-level shape of a --profile TOML file: a named set
// of profiles, each encoding the --in file once with its own options.
type BatchFile struct {
	Profiles []Profile `toml:"profile"`
}

func loadBatchFile(path string) (*BatchFile, error) {
	var bf BatchFile
	if _, err := toml.DecodeFile(path, &bf); err != nil {
		return nil, fmt.Errorf("loading profile file %q: %w", path, err)
	}
	for i := range bf.Profiles {
		if bf.Profiles[i].MaxOffsetBits == 0 {
			bf.Profiles[i].MaxOffsetBits = 16
		}
	}
	return &bf, nil
}

func (p Profile) options() codec.Options {
	return codec.Options{
		MaxOffsetBits: p.MaxOffsetBits,
		RLE:           p.RLE,
		Fast:          p.Fast,
	}
}

func (p Profile) ensureOutDir() error {
	if p.OutDir == "" {
		return nil
	}
	return os.MkdirAll(p.OutDir, 0o755)
}
