// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
)

// TestCommandTree walks every subcommand and renders its help. Rendering
// binds the params struct, so a malformed flag tag panics here rather
// than when a user first runs the command.
func TestCommandTree(t *testing.T) {
	root := newRoot(&environment{level: new(slog.LevelVar)})

	for _, command := range root.Subcommands {
		t.Run(command.Name, func(t *testing.T) {
			if command.Summary == "" {
				t.Error("missing Summary")
			}
			if command.Run == nil {
				t.Error("missing Run")
			}
			var help bytes.Buffer
			command.PrintHelp(&help)
			if !strings.Contains(help.String(), "Usage:") {
				t.Errorf("help has no usage line:\n%s", help.String())
			}
		})
	}
}

// TestSharedFlags checks that every command reading tag data accepts the
// same input flags.
func TestSharedFlags(t *testing.T) {
	root := newRoot(&environment{level: new(slog.LevelVar)})
	readers := map[string]bool{"decode": true, "diag": true, "validate": true, "hash": true, "recompress": true}

	for _, command := range root.Subcommands {
		if !readers[command.Name] {
			continue
		}
		flagSet := cli.FlagsFromParams(command.Name, command.Params())
		for _, name := range []string{"config", "max-depth", "verbose", "hex", "from"} {
			if flagSet.Lookup(name) == nil {
				t.Errorf("%s has no --%s flag", command.Name, name)
			}
		}
	}
}
