// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/nbtjson"
)

// encodeParams holds the parameters for "nbt encode".
type encodeParams struct {
	sharedParams
	outputParams
	Compression string `json:"compression" flag:"compression" desc:"output compression: none, gzip, zlib, zstd, lz4 (default: config compression)"`
}

func encodeCommand(env *environment) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert typed JSON to tag data",
		Description: `Read typed JSON (as written by "nbt decode") and write the tag
encoding. Comments and trailing commas are accepted (JSONC). A JSON
array of documents encodes as consecutive top-level tags.

The output is binary and compressed with the configured filter (gzip
unless the config file says otherwise). With -o the file is replaced
atomically.`,
		Usage:  "nbt encode [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Round-trip a file through JSON",
				Command:     "nbt decode level.dat | nbt encode -o level.dat.new",
			},
			{
				Description: "Inspect the encoding of a hand-written document",
				Command:     "nbt encode --compression none doc.jsonc | xxd",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			s, err := env.resolve(params.sharedParams, logger)
			if err != nil {
				return err
			}
			data, name, err := env.readInput("encode", args, false)
			if err != nil {
				return err
			}
			if len(data) == 0 {
				return cli.Validation("empty input: expected a JSON document")
			}
			tags, err := nbtjson.UnmarshalAll(data, nbtjson.Options{})
			if err != nil {
				return badInput(err)
			}
			options, err := s.writeOptions(params.Compression)
			if err != nil {
				return err
			}
			logger.Debug("encoding", "input", name, "tags", len(tags), "compression", options.Filter.String())
			return env.writeTags(params.outputParams, options, tags)
		},
	}
}
