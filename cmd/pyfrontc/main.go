// SPDX-License-Identifier: Apache-2.0

// Command pyfrontc compiles a single source file and prints a short
// summary of the resulting computation.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"pyfront/internal/driver"
	"pyfront/internal/errors"
)

func main() {
	sv := flag.Bool("sv", false, "recognize __VERIFIER_assume/__VERIFIER_assert")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: pyfrontc [-sv] <file.py>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	computations, err := driver.CompileSource(path, string(source), driver.Options{SVFunctions: *sv})
	if err != nil {
		reportError(string(source), err)
		os.Exit(1)
	}

	comp := computations["main"]
	fmt.Printf("main: %d declared input(s)\n", len(comp.Inputs))
	for _, in := range comp.Inputs {
		fmt.Printf("  %s : %s\n", in.Name, in.Sort)
	}
	if bug := comp.Bug(); bug != nil {
		fmt.Printf("bug predicate: %s\n", bug)
	} else {
		fmt.Println("bug predicate: (none — no reachable return)")
	}

	color.Green("✅ compiled %s", path)
}

// reportError prints a caret-style diagnostic when err carries a source
// position.
func reportError(src string, err error) {
	ce, ok := err.(*errors.CompilerError)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	if ce.Position.Filename == "" || ce.Position.Line <= 0 {
		color.Red("%s: %s", ce.Code, ce.Message)
		return
	}

	lines := strings.Split(src, "\n")
	if ce.Position.Line > len(lines) {
		color.Red("%s: %s (at unknown location)", ce.Code, ce.Message)
		return
	}

	line := lines[ce.Position.Line-1]
	caret := strings.Repeat(" ", max(0, ce.Position.Column-1)) + "^"

	color.Red("❌ %s in %s at line %d, column %d:", ce.Code, ce.Position.Filename, ce.Position.Line, ce.Position.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", ce.Message)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
