// Package report implements the Report component (§4.H): rendering the
// leaked-item set to the user.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/slimsag/godocmd"

	"github.com/sourcegraph/should-be-public-checker/internal/graph"
)

// Options controls how the report is rendered.
type Options struct {
	// Docs prints each leaked item's raw doc comment, passed through
	// godocmd.ToMarkdown and indented, under its label.
	Docs bool
}

// Write prints the leak report to w: a header line followed by one
// "- <label>" line per leaked item, sorted (leaks is already sorted by
// internal/graph.Analyze). An empty leak set still prints the header, so
// scripts can tell "ran cleanly, nothing leaked" from "didn't run".
func Write(w io.Writer, leaks []graph.Leak, opts Options) error {
	if _, err := fmt.Fprintln(w, "visible but not importable:"); err != nil {
		return err
	}
	for _, leak := range leaks {
		if _, err := fmt.Fprintf(w, "- %s\n", leak.Label); err != nil {
			return err
		}
		if opts.Docs && leak.Docs != nil && *leak.Docs != "" {
			if err := writeDocs(w, *leak.Docs); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeDocs(w io.Writer, docs string) error {
	var buf bytes.Buffer
	godocmd.ToMarkdown(&buf, docs, nil)
	for _, line := range splitLines(buf.String()) {
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "    %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
