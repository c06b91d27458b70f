// Package count provides the text metrics reported by cwl.
//
// It defines the metrics selection requested on the command line and the
// pure counting functions for characters, words, and lines. Counting never
// fails: any content is treated as text.
package count

import (
	"strings"
	"unicode/utf8"
)

// Selection holds the set of metrics requested for an invocation.
//
// Each field is independent. The zero value selects nothing, which is a
// meaningful state: callers report names only and skip counting entirely.
type Selection struct {
	Chars bool // Count Unicode scalar values
	Words bool // Count whitespace-delimited words
	Lines bool // Count lines
}

// IsNone reports whether no metric is selected.
func (s Selection) IsNone() bool {
	return !s.Chars && !s.Words && !s.Lines
}

// Labels returns the labels of the selected metrics in report order
// (characters, words, lines).
func (s Selection) Labels() []string {
	var labels []string
	if s.Chars {
		labels = append(labels, CharLabel)
	}
	if s.Words {
		labels = append(labels, WordLabel)
	}
	if s.Lines {
		labels = append(labels, LineLabel)
	}
	return labels
}

// Report labels for each metric.
const (
	CharLabel = "char count"
	WordLabel = "word count"
	LineLabel = "line count"
)

// Counts holds the computed metrics for a single file.
// A nil field means the metric was not selected.
type Counts struct {
	Chars *int
	Words *int
	Lines *int
}

// Compute returns the counts of content for every metric in sel.
// Unselected metrics are left nil.
func Compute(content string, sel Selection) Counts {
	var c Counts
	if sel.Chars {
		n := Chars(content)
		c.Chars = &n
	}
	if sel.Words {
		n := Words(content)
		c.Words = &n
	}
	if sel.Lines {
		n := Lines(content)
		c.Lines = &n
	}
	return c
}

// Chars returns the number of Unicode scalar values in s.
// Callers pass valid UTF-8; an invalid byte would count as one.
func Chars(s string) int {
	return utf8.RuneCountInString(s)
}

// Words returns the number of maximal runs of non-whitespace characters in s.
func Words(s string) int {
	return len(strings.Fields(s))
}

// Lines returns the number of lines in s. Every "\n" terminates a line and a
// final segment without a terminator is a line of its own.
func Lines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
