// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "nbt",
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "decode"
					return nil
				},
			},
			{
				Name: "encode",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "encode"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"encode"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "encode" {
		t.Errorf("dispatched to %q, want %q", called, "encode")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var params struct {
		MaxDepth int    `flag:"max-depth" default:"512"`
		Output   string `flag:"output,o"`
	}
	var target string

	command := &Command{
		Name:   "decode",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"-o", "out.json", "level.dat"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Output != "out.json" {
		t.Errorf("Output = %q, want %q", params.Output, "out.json")
	}
	if params.MaxDepth != 512 {
		t.Errorf("MaxDepth = %d, want default 512", params.MaxDepth)
	}
	if target != "level.dat" {
		t.Errorf("target = %q, want %q", target, "level.dat")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	var params struct {
		Compact bool   `flag:"compact"`
		Color   string `flag:"color"`
	}
	command := &Command{
		Name:   "diag",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--compcat"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	message := err.Error()
	if !strings.Contains(message, "did you mean --compact") {
		t.Errorf("error = %q, want suggestion for '--compact'", message)
	}
	if !strings.Contains(message, "--help") {
		t.Errorf("error = %q, should point to --help", message)
	}
	if CategoryOf(err) != CategoryValidation {
		t.Errorf("category = %q, want validation", CategoryOf(err))
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	var params struct {
		Compact bool `flag:"compact"`
	}
	command := &Command{
		Name:   "diag",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "nbt",
		Subcommands: []*Command{
			{Name: "decode", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "validate", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"decdoe"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "decode"`) {
		t.Errorf("error = %q, want suggestion for decode", err.Error())
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "nbt",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "decode", Summary: "Decode a tag file", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("Execute() = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "Decode a tag file") {
		t.Errorf("help output missing subcommand summary:\n%s", help.String())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	var params struct {
		HexInput bool `flag:"hex,x" desc:"treat input as hex"`
	}
	root := &Command{
		Name:       "nbt",
		HelpOutput: &help,
		Subcommands: []*Command{
			{
				Name:        "decode",
				Description: "Decode a tag file to JSON.",
				Params:      func() any { return &params },
				Examples:    []Example{{Description: "From a file", Command: "nbt decode level.dat"}},
				Run: func(context.Context, []string, *slog.Logger) error {
					t.Error("Run called for --help")
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"decode", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	output := help.String()
	for _, want := range []string{"Decode a tag file to JSON.", "Usage:\n  nbt decode [flags]", "--hex", "# From a file"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_InheritsLogger(t *testing.T) {
	var logs bytes.Buffer
	root := &Command{
		Name:   "nbt",
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
					logger.Info("decoding")
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"decode"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(logs.String(), "decoding") {
		t.Errorf("subcommand did not log through the root logger: %q", logs.String())
	}
}

func TestCommand_Execute_PropagatesRunError(t *testing.T) {
	failure := errors.New("boom")
	command := &Command{
		Name: "hash",
		Run:  func(context.Context, []string, *slog.Logger) error { return failure },
	}
	if err := command.Execute(context.Background(), nil); !errors.Is(err, failure) {
		t.Errorf("Execute() = %v, want %v", err, failure)
	}
}
