// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/nbt"
	"github.com/bureau-foundation/nbt/lib/nbtfile"
)

// outputParams select the destination of a command's result.
type outputParams struct {
	Output string `json:"output" flag:"output,o" desc:"write to this file instead of stdout"`
}

// writeText writes data to the output file, or to stdout when none is
// named.
func (env *environment) writeText(output outputParams, data []byte) error {
	if output.Output == "" || output.Output == "-" {
		if _, err := env.stdout.Write(data); err != nil {
			return cli.Internal("write stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(output.Output, data, 0644); err != nil {
		return cli.Internal("write %s: %w", output.Output, err)
	}
	return nil
}

// writeTags encodes tags to the output file, replaced atomically, or to
// stdout.
func (env *environment) writeTags(output outputParams, options nbtfile.Options, tags []nbt.Tag) error {
	var err error
	if output.Output == "" || output.Output == "-" {
		err = nbtfile.Write(env.stdout, options, tags...)
	} else {
		err = nbtfile.WriteFile(output.Output, options, tags...)
	}
	if err != nil {
		return badInput(err)
	}
	return nil
}
