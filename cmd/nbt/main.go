// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/bureau-foundation/nbt/cmd/nbt/commands"
	"github.com/bureau-foundation/nbt/lib/process"
)

func main() {
	// Commands that print their own verdict (validate, hash --verify)
	// return a quiet cli.ExitError; categorized errors pick 1 or 2.
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return commands.Root().Execute(ctx, os.Args[1:])
}
