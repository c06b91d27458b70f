// Package main provides the entry point for the cwl CLI tool.
//
// The cwl command reports character, word, and line counts for a file or,
// recursively, for every file in a directory tree.
//
// Usage:
//
//	cwl [flags] <path>
//
// Examples:
//
//	cwl -w notes.txt
//	cwl -c -l ./docs
//	cwl --words --output-format=json --gitignore .
//
// For more information, run: cwl --help
package main

import (
	"log"

	"github.com/otuschhoff/cwl/cmd/cwl/cmd"
)

func main() {
	log.SetFlags(0)
	if err := cmd.Execute(); err != nil {
		log.SetPrefix("[ERROR] ")
		log.Fatal(err)
	}
}
