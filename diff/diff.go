// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two tree dumps
// line by line and reports the result in unified diff format.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

// Diff returns the unified diff of old and new, or nil if they are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(old),
		B:        splitLines(new),
		FromFile: oldName,
		ToFile:   newName,
		Context:  Context,
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "diff %s %s\n", oldName, newName)
	n := buf.Len()
	if err := difflib.WriteUnifiedDiff(&buf, ud); err != nil {
		return nil, err
	}
	if buf.Len() == n {
		return nil, nil
	}
	return buf.Bytes(), nil
}

// splitLines splits data after each newline. A final line without a
// newline gets one, so that it does not run into the next diff line.
func splitLines(data []byte) []string {
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
