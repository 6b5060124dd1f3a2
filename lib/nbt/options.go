// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "log/slog"

// DefaultMaxDepth is the nesting limit applied when
// Options.MaxDepth is zero. The top-level tag is depth 0; each
// compound or list adds one level for its children.
const DefaultMaxDepth = 512

// maxPreallocate caps how many elements a declared count may reserve
// before the elements are actually read.
const maxPreallocate = 4096

// Options configures a Decoder or Encoder. The zero value is ready to
// use: default depth limit, no object types allowed, no logging.
type Options struct {
	// MaxDepth rejects trees nested deeper than this. Zero selects
	// DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int

	// Objects is the allow-list for Object and ObjectArray tags. Nil
	// refuses every object.
	Objects *ObjectRegistry

	// Logger receives a Warn record for every Unknown tag read or
	// skipped. Nil discards them.
	Logger *slog.Logger
}

func (o Options) maxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
