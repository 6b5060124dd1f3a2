// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/compress"
	"github.com/bureau-foundation/nbt/lib/nbt"
	"github.com/bureau-foundation/nbt/lib/nbtfile"
)

// readInput returns the bytes of the single optional file argument, or
// of stdin when there is none or it is "-". The returned name labels
// the input in output and logs.
//
// When hexMode is true, the raw bytes are treated as hex text:
// whitespace is stripped and the hex is decoded to binary.
func (env *environment) readInput(command string, args []string, hexMode bool) ([]byte, string, error) {
	if len(args) > 1 {
		return nil, "", cli.Validation("%s takes at most one file argument, got %d", command, len(args))
	}

	var data []byte
	name := "-"
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		var err error
		data, err = os.ReadFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", cli.NotFound("%s: no such file", name)
		}
		if err != nil {
			return nil, "", cli.Internal("read %s: %w", name, err)
		}
	} else {
		var err error
		data, err = io.ReadAll(env.stdin)
		if err != nil {
			return nil, "", cli.Internal("read stdin: %w", err)
		}
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, "", err
		}
		data = decoded
	}

	return data, name, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "0a 00 04" or "0a0004").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// tagInput is decoded tag data plus where it came from.
type tagInput struct {
	name   string
	filter compress.Filter
	tags   []nbt.Tag
}

// readTags reads and decodes tag input. Without slurp the input must
// hold exactly one tag.
func (env *environment) readTags(command string, args []string, input inputParams, s *settings, slurp bool) (*tagInput, error) {
	data, name, err := env.readInput(command, args, input.HexInput)
	if err != nil {
		return nil, err
	}
	options, err := s.readOptions(input)
	if err != nil {
		return nil, err
	}

	result := &tagInput{name: name}
	if slurp {
		result.tags, result.filter, err = nbtfile.ReadAll(bytes.NewReader(data), options)
		if err == nil && len(result.tags) == 0 {
			err = &nbt.DecodeError{Category: nbt.ErrTruncated, Detail: "empty stream", Cause: io.ErrUnexpectedEOF}
		}
	} else {
		var tag nbt.Tag
		tag, result.filter, err = nbtfile.Read(bytes.NewReader(data), options)
		result.tags = []nbt.Tag{tag}
	}
	if err != nil {
		// Everything here was read from the caller's data, so a failing
		// decompressor is bad input too.
		return nil, &cli.ToolError{Category: cli.CategoryValidation, Err: fmt.Errorf("%s: %w", name, err)}
	}

	s.logger.Debug("decoded input",
		"input", name,
		"bytes", len(data),
		"compression", result.filter.String(),
		"tags", len(result.tags),
	)
	return result, nil
}
