// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"strings"
)

// Hex decodes a hex listing. Whitespace and '|' separators are ignored,
// so fields can be grouped for readability:
//
//	data := testutil.Hex(t, "0A 00 04 72 6F 6F 74 | 00")
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, listing string) []byte {
	t.Helper()
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '|':
			return -1
		}
		return r
	}, listing)
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		t.Fatalf("invalid hex listing %q: %v", listing, err)
	}
	return data
}

// HexDump formats data as upper-case bytes separated by spaces, the
// same form Hex accepts.
func HexDump(data []byte) string {
	var builder strings.Builder
	for index, b := range data {
		if index > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(strings.ToUpper(hex.EncodeToString([]byte{b})))
	}
	return builder.String()
}
