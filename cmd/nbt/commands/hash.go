// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/compress"
	"github.com/bureau-foundation/nbt/lib/treehash"
)

// hashParams holds the parameters for "nbt hash".
type hashParams struct {
	cli.JSONOutput
	sharedParams
	inputParams
	Slurp  bool   `json:"slurp"  flag:"slurp,s" desc:"hash a stream of tags rather than exactly one"`
	Verify string `json:"verify" flag:"verify"  desc:"exit 1 unless the tree hash equals this hex value"`
}

type hashReport struct {
	Input       string          `json:"input"`
	Hash        string          `json:"hash"`
	Compression compress.Filter `json:"compression"`
	Tags        int             `json:"tags"`
	Verified    *bool           `json:"verified,omitempty"`
}

func hashCommand(env *environment) *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Print the BLAKE3 tree hash",
		Description: `Hash the uncompressed tag encoding with keyed BLAKE3. The hash is
independent of the compression filter, so a file and its recompressed
copy hash the same.

Output is "<hash>  <input>", in the style of b3sum. With --verify the
command exits 1 when the hash differs.`,
		Usage:  "nbt hash [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Check that recompression preserved the tree",
				Command:     "nbt hash --verify $(nbt hash --json level.dat | jq -r .hash) level.zst",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			s, err := env.resolve(params.sharedParams, logger)
			if err != nil {
				return err
			}

			var expected treehash.Hash
			if params.Verify != "" {
				expected, err = treehash.Parse(params.Verify)
				if err != nil {
					return cli.Validation("--verify: %w", err)
				}
			}

			input, err := env.readTags("hash", args, params.inputParams, s, params.Slurp)
			if err != nil {
				return err
			}
			sum, err := treehash.Sum(s.codecOptions(), input.tags...)
			if err != nil {
				return badInput(err)
			}

			report := hashReport{
				Input:       input.name,
				Hash:        sum.String(),
				Compression: input.filter,
				Tags:        len(input.tags),
			}
			if params.Verify != "" {
				verified := sum == expected
				report.Verified = &verified
			}

			if done, err := params.EmitJSON(env.stdout, report); done {
				if err != nil {
					return cli.Internal("write report: %w", err)
				}
			} else {
				fmt.Fprintf(env.stdout, "%s  %s\n", report.Hash, report.Input)
			}
			if report.Verified != nil && !*report.Verified {
				if !params.OutputJSON {
					fmt.Fprintf(env.stderr, "hash mismatch: expected %s\n", expected)
				}
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
