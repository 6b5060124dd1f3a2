// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/nbt/lib/compress"
	"github.com/bureau-foundation/nbt/lib/nbt"
)

// Options configures file I/O.
type Options struct {
	// Codec is passed to the tag decoder and encoder.
	Codec nbt.Options

	// Filter compresses output. On input it is used only when Detect
	// is false.
	Filter compress.Filter

	// Detect selects the input filter from the stream header.
	Detect bool
}

// DefaultOptions writes gzip and detects the input filter.
func DefaultOptions() Options {
	return Options{Filter: compress.Gzip, Detect: true}
}

// openReader wraps r with the configured or detected filter.
func openReader(r io.Reader, options Options) (io.ReadCloser, compress.Filter, error) {
	if options.Detect {
		return compress.NewDetectingReader(r)
	}
	reader, err := compress.NewReader(r, options.Filter)
	return reader, options.Filter, err
}

// Read decodes exactly one tag from r and reports the filter the data
// was compressed with. An empty stream is a truncation error and data
// after the tag is a structural error.
func Read(r io.Reader, options Options) (nbt.Tag, compress.Filter, error) {
	reader, filter, err := openReader(r, options)
	if err != nil {
		return nbt.Tag{}, filter, err
	}
	defer reader.Close()

	decoder := nbt.NewDecoder(reader, options.Codec)
	tag, err := decoder.Decode()
	if errors.Is(err, io.EOF) {
		return nbt.Tag{}, filter, &nbt.DecodeError{Category: nbt.ErrTruncated, Detail: "empty stream", Cause: io.ErrUnexpectedEOF}
	}
	if err != nil {
		return nbt.Tag{}, filter, err
	}
	more, err := decoder.More()
	if err != nil {
		return nbt.Tag{}, filter, fmt.Errorf("checking for trailing data: %w", err)
	}
	if more {
		return nbt.Tag{}, filter, &nbt.DecodeError{
			Category: nbt.ErrStructural,
			Detail:   "trailing data after tag",
			Offset:   decoder.Offset(),
		}
	}
	return tag, filter, nil
}

// ReadAll decodes every top-level tag in r until the stream ends.
func ReadAll(r io.Reader, options Options) ([]nbt.Tag, compress.Filter, error) {
	reader, filter, err := openReader(r, options)
	if err != nil {
		return nil, filter, err
	}
	defer reader.Close()

	decoder := nbt.NewDecoder(reader, options.Codec)
	var tags []nbt.Tag
	for {
		tag, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return tags, filter, nil
		}
		if err != nil {
			return nil, filter, fmt.Errorf("tag %d: %w", len(tags), err)
		}
		tags = append(tags, tag)
	}
}

// Write encodes tags in order into w through options.Filter.
func Write(w io.Writer, options Options, tags ...nbt.Tag) error {
	writer, err := compress.NewWriter(w, options.Filter)
	if err != nil {
		return err
	}
	encoder := nbt.NewEncoder(writer, options.Codec)
	for _, tag := range tags {
		if err := encoder.Encode(tag); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finishing %s stream: %w", options.Filter, err)
	}
	return nil
}

// ReadFile reads one tag from the file at path.
func ReadFile(path string, options Options) (nbt.Tag, compress.Filter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nbt.Tag{}, compress.None, err
	}
	defer file.Close()

	tag, filter, err := Read(file, options)
	if err != nil {
		return nbt.Tag{}, filter, fmt.Errorf("reading %s: %w", path, err)
	}
	return tag, filter, nil
}

// WriteFile writes tags to path. The data goes to a temporary file in
// the same directory which is renamed over path only after the encode
// and the compressor have finished successfully.
func WriteFile(path string, options Options, tags ...nbt.Tag) error {
	directory := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := Write(tmpFile, options, tags...); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
