// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Coder is implemented by errors that carry their own exit status.
type Coder interface {
	ExitCode() int
}

// Quiet is implemented by errors whose outcome the command has already
// printed.
type Quiet interface {
	Quiet() bool
}

// Report writes "error: err" to w unless err is quiet, and returns the
// exit status: the first Coder in err's chain, else 1.
func Report(w io.Writer, err error) int {
	var quiet Quiet
	if !errors.As(err, &quiet) || !quiet.Quiet() {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	var coder Coder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// Fatal reports err to stderr and exits. This is the standard binary
// entrypoint error handler.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}
