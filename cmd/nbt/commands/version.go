// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Short bool `json:"short" flag:"short" desc:"print only the version number"`
}

func versionCommand(env *environment) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			if done, err := params.EmitJSON(env.stdout, version.Current()); done {
				return err
			}
			if params.Short {
				fmt.Fprintln(env.stdout, version.Short())
				return nil
			}
			fmt.Fprintf(env.stdout, "nbt %s\n", version.Full())
			return nil
		},
	}
}
