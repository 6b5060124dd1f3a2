// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/compress"
	"github.com/bureau-foundation/nbt/lib/nbt"
)

// validateParams holds the parameters for "nbt validate".
type validateParams struct {
	cli.JSONOutput
	sharedParams
	inputParams
	Slurp bool `json:"slurp" flag:"slurp,s" desc:"validate a stream of tags rather than exactly one"`
}

// validateReport is the outcome of one validation.
type validateReport struct {
	Input       string          `json:"input"`
	Valid       bool            `json:"valid"`
	Compression compress.Filter `json:"compression"`
	Tags        int             `json:"tags"`
	Bytes       int64           `json:"bytes"`

	// TrailingBytes counts uncompressed bytes after the last tag.
	TrailingBytes int64 `json:"trailing_bytes"`

	// FirstDifference is the offset of the first byte where the
	// re-encoding departs from the input, when it does.
	FirstDifference *int64 `json:"first_difference,omitempty"`
	ReencodedBytes  int64  `json:"reencoded_bytes"`

	Problem string `json:"problem,omitempty"`
}

func validateCommand(env *environment) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that tag data decodes and re-encodes identically",
		Description: `Decompress and decode the input, encode the tree again, and compare
the bytes. Exits 0 and prints "valid" when they match. Otherwise prints
what went wrong and exits 1:

  - the input does not decode (truncated, structurally invalid, or
    nested beyond --max-depth),
  - bytes remain after the tag (or, with -s, no tag could be read),
  - the re-encoding differs, for example because the input holds tags
    with unregistered discriminators or duplicate compound names.`,
		Usage:  "nbt validate [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Validate a tag file",
				Command:     "nbt validate level.dat",
			},
			{
				Description: "Validate a hex dump and report as JSON",
				Command:     "nbt validate --hex --json dump.hex",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			s, err := env.resolve(params.sharedParams, logger)
			if err != nil {
				return err
			}
			data, name, err := env.readInput("validate", args, params.HexInput)
			if err != nil {
				return err
			}
			options, err := s.readOptions(params.inputParams)
			if err != nil {
				return err
			}

			report := validateData(data, options.Filter, options.Detect, s.codecOptions(), params.Slurp)
			report.Input = name
			logger.Debug("validated", "input", name, "valid", report.Valid, "tags", report.Tags)

			if done, err := params.EmitJSON(env.stdout, report); done {
				if err != nil {
					return cli.Internal("write report: %w", err)
				}
			} else if report.Valid {
				fmt.Fprintf(env.stdout, "valid: %d %s, %d bytes, %s\n", report.Tags, plural(report.Tags, "tag"), report.Bytes, report.Compression)
			} else {
				fmt.Fprintf(env.stdout, "invalid: %s\n", report.Problem)
			}
			if !report.Valid {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func plural(count int, noun string) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}

// validateData runs the decode and re-encode comparison over data.
func validateData(data []byte, filter compress.Filter, detect bool, options nbt.Options, slurp bool) validateReport {
	report := validateReport{Compression: filter}

	var reader io.ReadCloser
	var err error
	if detect {
		reader, report.Compression, err = compress.NewDetectingReader(bytes.NewReader(data))
	} else {
		reader, err = compress.NewReader(bytes.NewReader(data), filter)
	}
	if err != nil {
		report.Problem = fmt.Sprintf("decompress: %v", err)
		return report
	}
	raw, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		report.Problem = fmt.Sprintf("decompress: %v", err)
		return report
	}
	report.Bytes = int64(len(raw))

	decoder := nbt.NewDecoder(bytes.NewReader(raw), options)
	var reencoded bytes.Buffer
	encoder := nbt.NewEncoder(&reencoded, options)
	for slurp || report.Tags == 0 {
		tag, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Problem = fmt.Sprintf("tag %d: %v", report.Tags, err)
			return report
		}
		if err := encoder.Encode(tag); err != nil {
			report.Problem = fmt.Sprintf("re-encode tag %d: %v", report.Tags, err)
			return report
		}
		report.Tags++
	}
	if report.Tags == 0 {
		report.Problem = "empty input: no tag to validate"
		return report
	}

	consumed := decoder.Offset()
	report.TrailingBytes = int64(len(raw)) - consumed
	report.ReencodedBytes = int64(reencoded.Len())

	if offset, differs := firstDifference(raw[:consumed], reencoded.Bytes()); differs {
		report.FirstDifference = &offset
		report.Problem = fmt.Sprintf("re-encoding differs at byte %d (input %d bytes, re-encoded %d bytes)",
			offset, consumed, reencoded.Len())
		return report
	}
	if report.TrailingBytes > 0 {
		report.Problem = fmt.Sprintf("%d trailing bytes after offset %d", report.TrailingBytes, consumed)
		return report
	}
	report.Valid = true
	return report
}

// firstDifference returns the first offset where original and
// reencoded disagree, counting a length mismatch as a difference at the
// shorter length.
func firstDifference(original, reencoded []byte) (int64, bool) {
	if bytes.Equal(original, reencoded) {
		return 0, false
	}
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength && original[offset] == reencoded[offset] {
		offset++
	}
	return int64(offset), true
}
