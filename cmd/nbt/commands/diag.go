// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/nbtdiag"
)

// diagParams holds the parameters for "nbt diag".
type diagParams struct {
	sharedParams
	inputParams
	outputParams
	Color    string `json:"color"     flag:"color"     desc:"colour output: auto, always, or never (default: config output.color)"`
	MaxItems int    `json:"max_items" flag:"max-items" desc:"abbreviate arrays longer than this, negative for none (default: config output.max_items)"`
}

func diagCommand(env *environment) *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Print an indented dump of the tag tree",
		Description: `Read tag data and print every tag with its type, name, and value:

  TAG_Compound("root"): 2 entries
  {
    TAG_Int("x"): 42
    TAG_List("xs"): 3 entries of type TAG_Int
    ...
  }

Long arrays are abbreviated. Tags with an unregistered discriminator show
as <unknown discriminator N>. Every tag in the input is printed.`,
		Usage:  "nbt diag [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Dump a tag file with colour in a pager",
				Command:     "nbt diag --color always level.dat | less -R",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			s, err := env.resolve(params.sharedParams, logger)
			if err != nil {
				return err
			}
			input, err := env.readTags("diag", args, params.inputParams, s, true)
			if err != nil {
				return err
			}

			color := params.Color
			if color == "" {
				color = s.config.Output.Color
			}
			options := nbtdiag.Options{Indent: s.config.Output.Indent, MaxItems: s.config.Output.MaxItems}
			if params.MaxItems != 0 {
				options.MaxItems = params.MaxItems
			}
			switch color {
			case "always":
				options.Color = true
			case "auto":
				options.Color = env.stdoutTerminal && (params.Output == "" || params.Output == "-")
			case "never":
			default:
				return cli.Validation("--color must be auto, always, or never, got %q", color)
			}

			var output strings.Builder
			for _, tag := range input.tags {
				output.WriteString(nbtdiag.Format(tag, options))
			}
			return env.writeText(params.outputParams, []byte(output.String()))
		},
	}
}
