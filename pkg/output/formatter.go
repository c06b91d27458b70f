// Package output renders cwl entry trees.
//
// The default text format is a flat listing: one line per file and one
// header line per directory, in pre-order, with no indentation. The json,
// yaml and table formats carry the same information in structured form.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/otuschhoff/cwl"
	"github.com/otuschhoff/cwl/pkg/count"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTable}

// Formatter renders an entry tree in one output format.
//
// The selection must be the one the tree was built with; it decides which
// metrics appear for each file.
type Formatter struct {
	format    string          // "text", "json", "yaml", "table"
	selection count.Selection // Metrics to report
	noHeader  bool            // Omit header row in table output
}

// NewFormatter creates a new Formatter with the specified format and selection.
func NewFormatter(format string, sel count.Selection, noHeader bool) *Formatter {
	return &Formatter{
		format:    format,
		selection: sel,
		noHeader:  noHeader,
	}
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Format renders root. Unknown formats fall back to text.
func (f *Formatter) Format(root cwl.Entry) string {
	switch f.format {
	case FormatJSON:
		return f.toJSON(f.toNode(root))
	case FormatYAML:
		return f.toYAML(f.toNode(root))
	case FormatTable:
		return f.toTable(root)
	default:
		var sb strings.Builder
		f.writeEntry(&sb, root)
		return sb.String()
	}
}

// WriteToFile writes formatted output to filename.
func (f *Formatter) WriteToFile(content string, filename string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}

// NameOnly renders the single line printed when no metric is selected.
func NameOnly(path string, isDir bool) string {
	if isDir {
		return fmt.Sprintf("Directory name: \"%s\"\n", path)
	}
	return fmt.Sprintf("File name: \"%s\"\n", path)
}

// FormatName renders only the path and its type, for invocations with no
// metric selected. The text format gives the same line as NameOnly.
func (f *Formatter) FormatName(path string, isDir bool) string {
	typ := "file"
	if isDir {
		typ = "directory"
	}

	switch f.format {
	case FormatJSON:
		return f.toJSON(&node{Path: path, Type: typ})
	case FormatYAML:
		return f.toYAML(&node{Path: path, Type: typ})
	case FormatTable:
		t := table.NewWriter()
		if !f.noHeader {
			t.AppendHeader(table.Row{"Type", "Path"})
		}
		t.AppendRow(table.Row{typ, path})
		t.SetStyle(table.StyleLight)
		return fmt.Sprintf("%s\n", t.Render())
	default:
		return NameOnly(path, isDir)
	}
}

func (f *Formatter) writeEntry(sb *strings.Builder, e cwl.Entry) {
	switch e := e.(type) {
	case *cwl.File:
		f.writeFile(sb, e)
	case *cwl.Directory:
		f.writeDirectory(sb, e)
	}
}

// writeFile renders a file as a single line.
func (f *Formatter) writeFile(sb *strings.Builder, file *cwl.File) {
	if file.Err != nil {
		if file.IsEmpty() {
			fmt.Fprintf(sb, "File \"%s\" is empty\n", file.Name)
		} else {
			fmt.Fprintf(sb, "File name: \"%s\", error: %v\n", file.Name, file.Err)
		}
		return
	}

	fmt.Fprintf(sb, "File name: \"%s\"", file.Name)
	for _, m := range f.metrics(file) {
		fmt.Fprintf(sb, ", %s: %d", m.label, m.value)
	}
	sb.WriteString("\n")
}

// writeDirectory renders a directory header followed by its children.
func (f *Formatter) writeDirectory(sb *strings.Builder, dir *cwl.Directory) {
	if dir.IsEmpty() {
		fmt.Fprintf(sb, "Directory \"%s\" is empty\n", dir.Name)
		return
	}

	fmt.Fprintf(sb, "Directory name: \"%s\"\n", dir.Name)
	for _, child := range dir.Children {
		f.writeEntry(sb, child)
	}
}

type metric struct {
	label string
	value int
}

// metrics returns the selected metrics of file in report order. An absent
// count is reported as zero.
func (f *Formatter) metrics(file *cwl.File) []metric {
	var out []metric
	if f.selection.Chars {
		out = append(out, metric{count.CharLabel, valueOf(file.Chars)})
	}
	if f.selection.Words {
		out = append(out, metric{count.WordLabel, valueOf(file.Words)})
	}
	if f.selection.Lines {
		out = append(out, metric{count.LineLabel, valueOf(file.Lines)})
	}
	return out
}

func valueOf(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// node is the structured form of an entry used by the json and yaml formats.
type node struct {
	Path     string  `json:"path" yaml:"path"`
	Type     string  `json:"type" yaml:"type"`
	Chars    *int    `json:"chars,omitempty" yaml:"chars,omitempty"`
	Words    *int    `json:"words,omitempty" yaml:"words,omitempty"`
	Lines    *int    `json:"lines,omitempty" yaml:"lines,omitempty"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	Children []*node `json:"children,omitempty" yaml:"children,omitempty"`
}

func (f *Formatter) toNode(e cwl.Entry) *node {
	switch e := e.(type) {
	case *cwl.File:
		n := &node{Path: e.Name, Type: "file"}
		if e.Err != nil {
			n.Error = e.Err.Error()
			return n
		}
		if f.selection.Chars {
			n.Chars = e.Chars
		}
		if f.selection.Words {
			n.Words = e.Words
		}
		if f.selection.Lines {
			n.Lines = e.Lines
		}
		return n
	case *cwl.Directory:
		n := &node{Path: e.Name, Type: "directory"}
		for _, child := range e.Children {
			n.Children = append(n.Children, f.toNode(child))
		}
		return n
	}
	return nil
}

// toTable renders one row per entry in pre-order.
func (f *Formatter) toTable(root cwl.Entry) string {
	t := table.NewWriter()

	labels := f.selection.Labels()
	if !f.noHeader {
		header := table.Row{"Type", "Path"}
		for _, l := range labels {
			header = append(header, l)
		}
		header = append(header, "Error")
		t.AppendHeader(header)
	}

	var walk func(e cwl.Entry)
	walk = func(e cwl.Entry) {
		switch e := e.(type) {
		case *cwl.File:
			row := table.Row{"file", e.Name}
			for _, m := range f.metrics(e) {
				if e.Err != nil {
					row = append(row, "")
				} else {
					row = append(row, strconv.Itoa(m.value))
				}
			}
			errText := ""
			if e.Err != nil {
				errText = e.Err.Error()
			}
			t.AppendRow(append(row, errText))
		case *cwl.Directory:
			row := table.Row{"directory", e.Name}
			for range labels {
				row = append(row, "")
			}
			t.AppendRow(append(row, ""))
			for _, child := range e.Children {
				walk(child)
			}
		}
	}
	walk(root)

	t.SetStyle(table.StyleLight)
	return fmt.Sprintf("%s\n", t.Render())
}

// toJSON converts data to a JSON string using indented formatting.
func (f *Formatter) toJSON(data interface{}) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	return string(b) + "\n"
}

func (f *Formatter) toYAML(data interface{}) string {
	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	return string(b)
}
