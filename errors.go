// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package routemig

import "fmt"

// A ConfigError reports an unusable configuration setting. Config errors
// are independent of the program being migrated.
type ConfigError struct {
	Field string
	Msg   string
}

func newConfigError(field, f string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(f, args...)}
}

func (e *ConfigError) Error() string {
	return "config: " + e.Field + ": " + e.Msg
}

// A StateError reports that an invocation of the rule was abandoned
// because the tree was malformed. Err is usually a *syntax.Anomaly.
type StateError struct {
	Method string
	State  State
	Err    error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Method, e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}
