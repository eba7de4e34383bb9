// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package routemig

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"rsc.io/routemig/syntax"
)

// camelBoundary matches the empty string between two words of a
// camel-case name: after a lower-case letter or digit that precedes a
// capital, and inside a run of capitals before the one that starts a
// lower-case word. HTTPClient splits as HTTP and Client.
var camelBoundary = regexp2.MustCompile(`(?<=[\p{Ll}\d])(?=\p{Lu})|(?<=\p{Lu})(?=\p{Lu}\p{Ll})`, regexp2.None)

// CamelToDashes converts a camel-case name to lower-case words joined by
// dashes: UserAccount becomes user-account. Every letter of s is kept.
func CamelToDashes(s string) string {
	runes := []rune(s)
	var parts []string
	start := 0
	m, err := camelBoundary.FindStringMatch(s)
	for err == nil && m != nil {
		// Index counts runes.
		if m.Index > start {
			parts = append(parts, dashWord(string(runes[start:m.Index])))
			start = m.Index
		}
		m, err = camelBoundary.FindNextMatch(m)
	}
	if start < len(runes) {
		parts = append(parts, dashWord(string(runes[start:])))
	}
	return strings.Join(parts, "-")
}

func dashWord(w string) string {
	if w == strings.ToUpper(w) {
		return strings.ToLower(w)
	}
	return lowerFirst(w)
}

// ImplicitPath derives the conventional route path of an action method:
// the dashed handler class name without suffix, a slash, and the method
// name without its action prefix. Method renderList of class
// App\UserAccountPresenter has path user-account/list.
func ImplicitPath(class, method, suffix string, prefixes []string) string {
	handler := syntax.ShortName(class)
	if len(handler) >= len(suffix) && strings.EqualFold(handler[len(handler)-len(suffix):], suffix) {
		handler = handler[:len(handler)-len(suffix)]
	}
	if p, ok := actionPrefix(method, prefixes); ok {
		method = method[len(p):]
	}
	return CamelToDashes(handler) + "/" + lowerFirst(method)
}

// actionPrefix returns the first of prefixes that method starts with.
func actionPrefix(method string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(method, p) {
			return p, true
		}
	}
	return "", false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
