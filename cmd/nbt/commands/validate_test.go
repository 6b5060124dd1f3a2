// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bureau-foundation/nbt/cmd/nbt/cli"
	"github.com/bureau-foundation/nbt/lib/compress"
	"github.com/bureau-foundation/nbt/lib/nbt"
	"github.com/bureau-foundation/nbt/lib/nbt/nbttest"
	"github.com/bureau-foundation/nbt/lib/testutil"
)

func TestValidateData(t *testing.T) {
	simple := testutil.Hex(t, nbttest.SimpleBytes)

	tests := []struct {
		name            string
		data            []byte
		slurp           bool
		valid           bool
		tags            int
		trailing        int64
		firstDifference int64 // -1 for none
		problem         string
	}{
		{
			name: "canonical", data: simple,
			valid: true, tags: 1, firstDifference: -1,
		},
		{
			name: "trailing bytes", data: append(append([]byte{}, simple...), 0x01, 0x02),
			tags: 1, trailing: 2, firstDifference: -1, problem: "2 trailing bytes",
		},
		{
			name: "stream with slurp", data: append(append([]byte{}, simple...), simple...), slurp: true,
			valid: true, tags: 2, firstDifference: -1,
		},
		{
			// The second "a" replaces the first, so the re-encoding
			// is one child shorter.
			name:  "duplicate compound names",
			data:  testutil.Hex(t, "0A 00 00 | 01 00 01 61 05 | 01 00 01 61 06 | 00"),
			tags:  1, firstDifference: 7, problem: "re-encoding differs at byte 7",
		},
		{
			name: "truncated", data: simple[:10],
			firstDifference: -1, problem: "truncated",
		},
		{
			name: "empty", data: nil,
			firstDifference: -1, problem: "empty input",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := validateData(test.data, compress.None, true, nbt.Options{}, test.slurp)

			if report.Valid != test.valid {
				t.Errorf("Valid = %v, want %v (problem: %s)", report.Valid, test.valid, report.Problem)
			}
			if report.Tags != test.tags {
				t.Errorf("Tags = %d, want %d", report.Tags, test.tags)
			}
			if report.TrailingBytes != test.trailing {
				t.Errorf("TrailingBytes = %d, want %d", report.TrailingBytes, test.trailing)
			}
			switch {
			case test.firstDifference < 0 && report.FirstDifference != nil:
				t.Errorf("FirstDifference = %d, want none", *report.FirstDifference)
			case test.firstDifference >= 0 && (report.FirstDifference == nil || *report.FirstDifference != test.firstDifference):
				t.Errorf("FirstDifference = %v, want %d", report.FirstDifference, test.firstDifference)
			}
			if !strings.Contains(report.Problem, test.problem) {
				t.Errorf("Problem = %q, want it to contain %q", report.Problem, test.problem)
			}
		})
	}
}

func TestFirstDifference(t *testing.T) {
	tests := []struct {
		a, b   string
		offset int64
		differ bool
	}{
		{"abc", "abc", 0, false},
		{"abc", "abd", 2, true},
		{"abc", "ab", 2, true},
		{"", "a", 0, true},
	}
	for _, test := range tests {
		offset, differ := firstDifference([]byte(test.a), []byte(test.b))
		if offset != test.offset || differ != test.differ {
			t.Errorf("firstDifference(%q, %q) = %d, %v", test.a, test.b, offset, differ)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	stdout, _, err := execute(t, simpleHex(t), "validate", "--hex")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := fmt.Sprintf("valid: 1 tag, %d bytes, none\n", len(testutil.Hex(t, nbttest.SimpleBytes)))
	if stdout != want {
		t.Errorf("validate output = %q", stdout)
	}

	trailing := testutil.HexDump(append(testutil.Hex(t, nbttest.SimpleBytes), 0x00))
	stdout, _, err = execute(t, []byte(trailing), "validate", "--hex", "--json")
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("validate of trailing data = %v, want exit 1", err)
	}
	var report validateReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("parse report: %v\n%s", err, stdout)
	}
	if report.Valid || report.TrailingBytes != 1 || report.Input != "-" {
		t.Errorf("report = %+v", report)
	}
}
