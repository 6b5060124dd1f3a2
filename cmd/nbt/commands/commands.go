// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
)

// environment is the process surface the commands touch. Tests replace
// the streams with buffers.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// stdoutTerminal selects colour for --color=auto.
	stdoutTerminal bool

	// level is shared with the logger so the configured log level
	// applies once the config file has been read.
	level *slog.LevelVar
}

// Root builds the nbt command tree bound to the process's standard
// streams.
func Root() *cli.Command {
	return newRoot(&environment{
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		stdoutTerminal: cli.IsTerminal(os.Stdout),
		level:          new(slog.LevelVar),
	})
}

func newRoot(env *environment) *cli.Command {
	return &cli.Command{
		Name: "nbt",
		Description: `nbt: inspect, convert, and verify Named Binary Tag data.

Reads and writes the big-endian tag format with gzip, zlib, zstd, or
lz4 compression, detected automatically on input.`,
		Logger:     cli.NewCommandLogger(env.stderr, env.level),
		HelpOutput: env.stderr,
		Subcommands: []*cli.Command{
			decodeCommand(env),
			encodeCommand(env),
			diagCommand(env),
			validateCommand(env),
			hashCommand(env),
			recompressCommand(env),
			versionCommand(env),
		},
	}
}
