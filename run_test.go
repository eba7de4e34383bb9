// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package routemig

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"rsc.io/routemig/refactor"
	"rsc.io/routemig/registry"
	"rsc.io/routemig/syntax"
)

// TestRun migrates the program.yaml of each testdata archive, using its
// config.yaml if present, and compares the dump of the result with stdout
// and any error with stderr.
func TestRun(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Log(file)
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			var program, config, wantStdout, wantStderr txtar.File
			for _, file := range ar.Files {
				switch file.Name {
				case "program.yaml":
					program = file
				case "config.yaml":
					config = file
				case "stdout":
					wantStdout = file
				case "stderr":
					wantStderr = file
				default:
					t.Fatalf("unexpected file %s", file.Name)
				}
			}
			if program.Name == "" {
				t.Fatal("missing program.yaml")
			}

			var stdout, stderr bytes.Buffer
			if err := run(&stdout, program.Data, config.Data); err != nil {
				fmt.Fprintf(&stderr, "ERROR: %v\n", err)
			}

			cmp := func(name string, have, want []byte) {
				have = trimSpace(have)
				want = trimSpace(want)
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			cmp("stderr", stderr.Bytes(), wantStderr.Data)
			cmp("stdout", stdout.Bytes(), wantStdout.Data)
		})
	}
}

func run(w io.Writer, program, config []byte) error {
	cfg, err := ParseConfig(config)
	if err != nil {
		return err
	}
	prog, err := syntax.Decode(program)
	if err != nil {
		return err
	}
	rule := New(cfg, registry.New(prog), nil)
	if err := refactor.Apply(prog, rule); err != nil {
		return err
	}
	return syntax.Dump(w, prog)
}

func trimSpace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " ")
	}
	return bytes.Join(lines, []byte("\n"))
}
