// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/codec"
	"github.com/bureau-foundation/nbt/lib/nbtjson"
)

// decodeParams holds the parameters for "nbt decode".
type decodeParams struct {
	sharedParams
	inputParams
	outputParams
	Format  string `json:"format"  flag:"format,f"  desc:"output format: json, cbor, or cbor-diag" default:"json"`
	Compact bool   `json:"compact" flag:"compact,c" desc:"compact JSON output (no indentation)"`
	Slurp   bool   `json:"slurp"   flag:"slurp,s"   desc:"read a stream of tags and output an array"`
}

func decodeCommand(env *environment) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert tag data to typed JSON or CBOR",
		Description: `Read tag data and write the equivalent typed document.

Every tag becomes {"type", "name", "value"}. Lists carry their element
type, compounds are ordered arrays of child documents, and non-finite
floats are the strings "NaN", "Infinity", and "-Infinity", so the
document converts back to identical bytes with "nbt encode".

With --format cbor the same document is written as deterministic CBOR;
cbor-diag prints that CBOR in RFC 8949 diagnostic notation.`,
		Usage:  "nbt decode [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Decode a compressed tag file to pretty JSON",
				Command:     "nbt decode level.dat",
			},
			{
				Description: "Decode hex from a wire dump",
				Command:     "echo '0a 00 00 00' | nbt decode --hex",
			},
			{
				Description: "Show the CBOR form in diagnostic notation",
				Command:     "nbt decode -f cbor-diag level.dat",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			s, err := env.resolve(params.sharedParams, logger)
			if err != nil {
				return err
			}
			input, err := env.readTags("decode", args, params.inputParams, s, params.Slurp)
			if err != nil {
				return err
			}

			options := s.jsonOptions(params.Compact)
			var output []byte
			switch params.Format {
			case "json":
				if params.Slurp {
					output, err = nbtjson.MarshalAll(input.tags, options)
				} else {
					output, err = nbtjson.Marshal(input.tags[0], options)
				}
				output = append(output, '\n')
			case "cbor", "cbor-diag":
				if params.Slurp {
					output, err = nbtjson.MarshalAllCBOR(input.tags, options)
				} else {
					output, err = nbtjson.MarshalCBOR(input.tags[0], options)
				}
				if err == nil && params.Format == "cbor-diag" {
					var notation string
					notation, err = codec.Diagnose(output)
					output = []byte(notation + "\n")
				}
			default:
				return cli.Validation("--format must be json, cbor, or cbor-diag, got %q", params.Format)
			}
			if err != nil {
				return badInput(err)
			}
			return env.writeText(params.outputParams, output)
		},
	}
}
