// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorList(t *testing.T) {
	var l ErrorList
	if l.Err() != nil {
		t.Fatalf("empty list: Err() = %v, want nil", l.Err())
	}
	l.Add(nil)
	l.Add(&Error{Class: "B", Method: "m", Msg: "second"})
	l.Add(&Error{Class: "A", Method: "m", Msg: "first"})
	l.Add(&Error{Class: "A", Method: "m", Msg: "first"})
	l.Add(errors.New("global"))

	var l2 ErrorList
	l2.Add(&Error{Class: "A", Msg: "class-level"})
	l2.Add(&Error{Class: "B", Method: "m", Msg: "second"})
	l.Add(&l2)

	if l.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", l.Len())
	}
	want := "global\nA: class-level\nA::m: first\nB::m: second"
	if have := l.Err().Error(); have != want {
		t.Errorf("Error():\n%s\nwant:\n%s", have, want)
	}
}

func TestErrorListCollapse(t *testing.T) {
	var l ErrorList
	for i := 0; i < 5; i++ {
		l.Add(&Error{Class: fmt.Sprintf("C%d", i), Method: "m", Msg: "same"})
	}
	l.Add(&Error{Class: "D", Method: "m", Msg: "other"})
	want := "C0::m: same [× 5]\nD::m: other"
	if have := l.Error(); have != want {
		t.Errorf("Error():\n%s\nwant:\n%s", have, want)
	}
}
