package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/khipro"
)

type upper struct{}

func (upper) Transliterate(s string) string { return strings.ToUpper(s) }

func TestLineLoopPipe(t *testing.T) {
	var out bytes.Buffer
	loop := lineLoop{tr: upper{}, in: strings.NewReader("ab\ncd\n"), out: &out}
	if err := loop.run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "AB\nCD\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestLineLoopStopsAtExit(t *testing.T) {
	var out bytes.Buffer
	loop := lineLoop{tr: upper{}, in: strings.NewReader("ab\nexit\ncd\n"), out: &out}
	if err := loop.run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "AB\n" {
		t.Errorf("expected input after 'exit' to be ignored, got %q", out.String())
	}
}

func TestLineLoopInteractive(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()
	//
	var out bytes.Buffer
	loop := lineLoop{tr: upper{}, in: strings.NewReader("ab\nexit\n"), out: &out, interactive: true}
	if err := loop.run(); err != nil {
		t.Fatal(err)
	}
	want := "khipro\ntype 'exit' to quit.\nEnter input: Output: AB\nEnter input: "
	if out.String() != want {
		t.Errorf("expected\n%q\ngot\n%q", want, out.String())
	}
}

func TestLineLoopEmptyLine(t *testing.T) {
	var out bytes.Buffer
	loop := lineLoop{tr: khipro.Default(), in: strings.NewReader("\nami\n"), out: &out}
	if err := loop.run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\nআমি\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestReadsFromTerminal(t *testing.T) {
	if readsFromTerminal(strings.NewReader("ami\n")) {
		t.Error("a string reader is not a terminal")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "input.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if readsFromTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
