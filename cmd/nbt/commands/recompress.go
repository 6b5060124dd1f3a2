// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
)

// recompressParams holds the parameters for "nbt recompress".
type recompressParams struct {
	sharedParams
	inputParams
	outputParams
	Compression string `json:"compression" flag:"compression" desc:"output compression: none, gzip, zlib, zstd, lz4 (default: config compression)"`
}

func recompressCommand(env *environment) *cli.Command {
	var params recompressParams

	return &cli.Command{
		Name:    "recompress",
		Summary: "Rewrite tag data with another compression filter",
		Description: `Decode every tag in the input and write it again with the chosen
compression filter. The input filter is detected unless --from names
it. Because the stream is decoded and re-encoded, corrupt input is
rejected rather than copied.

Tags with unregistered discriminators cannot be written and are dropped
with a warning.`,
		Usage:  "nbt recompress [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Convert a gzip tag file to zstd",
				Command:     "nbt recompress --compression zstd -o level.zst level.dat",
			},
			{
				Description: "Strip compression for inspection",
				Command:     "nbt recompress --compression none level.dat | xxd | less",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			s, err := env.resolve(params.sharedParams, logger)
			if err != nil {
				return err
			}
			input, err := env.readTags("recompress", args, params.inputParams, s, true)
			if err != nil {
				return err
			}
			options, err := s.writeOptions(params.Compression)
			if err != nil {
				return err
			}
			if err := env.writeTags(params.outputParams, options, input.tags); err != nil {
				return err
			}
			logger.Info("recompressed",
				"input", input.name,
				"from", input.filter.String(),
				"to", options.Filter.String(),
				"tags", len(input.tags),
			)
			return nil
		},
	}
}
