// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"sort"
	"strings"
)

// An Error is an error reported by a rule while visiting a method.
type Error struct {
	Class  string
	Method string
	Msg    string
}

func (e *Error) Error() string {
	if e.Class == "" {
		return e.Msg
	}
	if e.Method == "" {
		return fmt.Sprintf("%s: %s", e.Class, e.Msg)
	}
	return fmt.Sprintf("%s::%s: %s", e.Class, e.Method, e.Msg)
}

type errorKey struct {
	class, method, msg string
}

// ErrorList is a set of Errors. It is also an error itself. The zero value is
// an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[errorKey]bool
}

// Add adds an error to l. If the error is an ErrorList, it merges all errors
// from that list into this list. Otherwise, it adds the error with no class
// or method. It suppresses duplicate errors (same location and message).
func (l *ErrorList) Add(err error) {
	var e *Error

	switch err := err.(type) {
	case nil:
		return

	case *ErrorList:
		for _, e := range err.errs {
			l.Add(e)
		}
		return

	case *Error:
		e = err

	default:
		e = &Error{Msg: err.Error()}
	}

	k := errorKey{e.Class, e.Method, e.Msg}
	if !l.set[k] {
		if l.set == nil {
			l.set = make(map[errorKey]bool)
		}
		l.errs = append(l.errs, e)
		l.set[k] = true
	}
}

// Len returns the number of distinct errors in l.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Error sorts and returns a "\n" separated list of formatted errors.
// Note that the result does not end in "\n" because the caller is
// expected to add that.
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}

	sort.SliceStable(l.errs, func(i, j int) bool {
		e1, e2 := l.errs[i], l.errs[j]
		if e1.Class != e2.Class {
			return e1.Class < e2.Class
		}
		return e1.Method < e2.Method
	})

	// Collapse duplicate messages that appear in many methods on the
	// assumption that one broken input amplified into many reports.
	count := make(map[string]int)
	for _, e := range l.errs {
		count[e.Msg]++
	}

	buf := new(strings.Builder)
	for _, e := range l.errs {
		msg := e.Msg
		switch {
		case count[msg] > 3:
			n := count[e.Msg]
			count[e.Msg] = -1
			msg += fmt.Sprintf(" [× %d]", n)

		case count[msg] < 0:
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString((&Error{Class: e.Class, Method: e.Method, Msg: msg}).Error())
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
