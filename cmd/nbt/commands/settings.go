// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"log/slog"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/compress"
	"github.com/bureau-foundation/nbt/lib/config"
	"github.com/bureau-foundation/nbt/lib/nbt"
	"github.com/bureau-foundation/nbt/lib/nbtfile"
	"github.com/bureau-foundation/nbt/lib/nbtjson"
)

// sharedParams are accepted by every command that touches tag data.
type sharedParams struct {
	ConfigPath string `json:"config"    flag:"config"    desc:"config file (default: $NBT_CONFIG, else built-in defaults)"`
	MaxDepth   int    `json:"max_depth" flag:"max-depth" desc:"nesting limit, negative for none (default: config max_depth)"`
	Verbose    bool   `json:"verbose"   flag:"verbose,v" desc:"log at debug level"`
}

// inputParams select how tag input is read.
type inputParams struct {
	HexInput bool   `json:"hex_input" flag:"hex,x" desc:"treat input as hex-encoded bytes"`
	From     string `json:"from"      flag:"from"  desc:"input compression (none, gzip, zlib, zstd, lz4), skipping detection"`
}

// settings is the merged view of config file and flags for one run.
type settings struct {
	config *config.Config
	logger *slog.Logger
}

// resolve loads the config file, applies flag overrides, and sets the
// log level.
func (env *environment) resolve(shared sharedParams, logger *slog.Logger) (*settings, error) {
	var cfg *config.Config
	var err error
	if shared.ConfigPath != "" {
		cfg, err = config.LoadFile(shared.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	if shared.MaxDepth != 0 {
		cfg.MaxDepth = shared.MaxDepth
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration:\n%w", err)
	}

	level, err := cli.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	if shared.Verbose {
		level = slog.LevelDebug
	}
	env.level.Set(level)

	return &settings{config: cfg, logger: logger}, nil
}

func (s *settings) codecOptions() nbt.Options {
	return nbt.Options{MaxDepth: s.config.MaxDepth, Logger: s.logger}
}

// readOptions reads with the --from filter when given, otherwise per
// the config's detection setting.
func (s *settings) readOptions(input inputParams) (nbtfile.Options, error) {
	options := nbtfile.Options{Codec: s.codecOptions(), Detect: s.config.DetectCompression}
	name := input.From
	if name == "" {
		name = s.config.Compression
	} else {
		options.Detect = false
	}
	filter, err := compress.ParseFilter(name)
	if err != nil {
		return nbtfile.Options{}, cli.Validation("--from: %w", err)
	}
	options.Filter = filter
	return options, nil
}

// writeOptions writes with the named filter, or the config's when empty.
func (s *settings) writeOptions(compression string) (nbtfile.Options, error) {
	if compression == "" {
		compression = s.config.Compression
	}
	filter, err := compress.ParseFilter(compression)
	if err != nil {
		return nbtfile.Options{}, cli.Validation("--compression: %w", err)
	}
	return nbtfile.Options{Codec: s.codecOptions(), Filter: filter}, nil
}

func (s *settings) jsonOptions(compact bool) nbtjson.Options {
	options := nbtjson.Options{Indent: s.config.Output.Indent}
	if compact || s.config.Output.Compact {
		options.Indent = ""
	}
	return options
}

// badInput categorizes err as a validation failure when it describes
// malformed input, and as internal otherwise.
func badInput(err error) error {
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		return err
	}
	for _, category := range []error{
		nbt.ErrTruncated,
		nbt.ErrRead,
		nbt.ErrStructural,
		nbt.ErrUnsupportedDiscriminator,
		nbt.ErrEncodingConstraint,
		nbt.ErrObjectNotAllowed,
		nbtjson.ErrInvalidDocument,
	} {
		if errors.Is(err, category) {
			return &cli.ToolError{Category: cli.CategoryValidation, Err: err}
		}
	}
	return &cli.ToolError{Category: cli.CategoryInternal, Err: err}
}
