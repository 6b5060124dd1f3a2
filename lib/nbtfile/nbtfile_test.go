// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/nbt/lib/compress"
	"github.com/bureau-foundation/nbt/lib/nbt"
	"github.com/bureau-foundation/nbt/lib/nbt/nbttest"
	"github.com/bureau-foundation/nbt/lib/testutil"
)

func TestWriteReadEveryFilter(t *testing.T) {
	tree := nbttest.SampleTree()
	for _, filter := range compress.Filters() {
		t.Run(filter.String(), func(t *testing.T) {
			var buffer bytes.Buffer
			options := Options{Filter: filter, Detect: true}
			if err := Write(&buffer, options, tree); err != nil {
				t.Fatalf("Write: %v", err)
			}

			tag, detected, err := Read(&buffer, options)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if detected != filter {
				t.Errorf("detected %s, want %s", detected, filter)
			}
			if !tag.Equal(tree) {
				t.Error("tree changed across write and read")
			}
		})
	}
}

func TestReadPinnedFilter(t *testing.T) {
	var buffer bytes.Buffer
	if err := Write(&buffer, Options{Filter: compress.Zstd}, nbttest.SimpleTree()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Reading zstd data as raw tags must fail rather than misdecode.
	if _, _, err := Read(bytes.NewReader(buffer.Bytes()), Options{Filter: compress.None}); err == nil {
		t.Error("zstd data decoded as raw tags")
	}
	tag, _, err := Read(bytes.NewReader(buffer.Bytes()), Options{Filter: compress.Zstd})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !tag.Equal(nbttest.SimpleTree()) {
		t.Error("tree mismatch")
	}
}

func TestReadRawSimpleBytes(t *testing.T) {
	tag, filter, err := Read(bytes.NewReader(testutil.Hex(t, nbttest.SimpleBytes)), DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if filter != compress.None {
		t.Errorf("filter = %s, want none", filter)
	}
	if !tag.Equal(nbttest.SimpleTree()) {
		t.Error("tree mismatch")
	}
}

// Long names push the name length prefix into ranges where the first
// bytes resemble zlib and LZ4 headers.
func TestReadRawLongNames(t *testing.T) {
	tests := []struct {
		name string
		tag  nbt.Tag
	}{
		{"string", nbt.Tag{Name: strings.Repeat("a", 0x1d00), Value: nbt.String("v")}},
		{"long", nbt.Tag{Name: "\x18" + strings.Repeat("a", 0x224c), Value: nbt.Long(7)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := Write(&buffer, Options{Filter: compress.None}, test.tag); err != nil {
				t.Fatalf("Write: %v", err)
			}
			tag, filter, err := Read(&buffer, DefaultOptions())
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if filter != compress.None {
				t.Errorf("filter = %s, want none", filter)
			}
			if !tag.Equal(test.tag) {
				t.Error("tree mismatch")
			}
		})
	}
}

func TestReadRejectsEmptyAndTrailing(t *testing.T) {
	if _, _, err := Read(bytes.NewReader(nil), DefaultOptions()); !errors.Is(err, nbt.ErrTruncated) {
		t.Errorf("empty stream: %v, want ErrTruncated", err)
	}

	var buffer bytes.Buffer
	if err := Write(&buffer, DefaultOptions(), nbttest.SimpleTree(), nbttest.SimpleTree()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, _, err := Read(bytes.NewReader(buffer.Bytes()), DefaultOptions()); !errors.Is(err, nbt.ErrStructural) {
		t.Errorf("two tags: %v, want ErrStructural", err)
	}

	tags, _, err := ReadAll(bytes.NewReader(buffer.Bytes()), DefaultOptions())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("ReadAll returned %d tags, want 2", len(tags))
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := testutil.FilePath(t, "level.dat")
	if err := WriteFile(path, DefaultOptions(), nbttest.SampleTree()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tag, filter, err := ReadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if filter != compress.Gzip {
		t.Errorf("filter = %s, want gzip", filter)
	}
	if !tag.Equal(nbttest.SampleTree()) {
		t.Error("tree mismatch")
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	// A failing encode must leave the existing file untouched and no
	// temp file behind.
	bad := nbt.Tag{Name: "bad", Value: nbt.End{}}
	if err := WriteFile(path, DefaultOptions(), bad); !errors.Is(err, nbt.ErrEncodingConstraint) {
		t.Fatalf("WriteFile(bad) = %v, want ErrEncodingConstraint", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the target")
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", entry.Name())
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(testutil.FilePath(t, "absent.dat"), DefaultOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
