package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// indent precedes every duplicate path in human output.
const indent = "    "

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// PrintHuman writes the grouped listing: each group's canonical path on
// its own line, duplicates indented beneath it, then the summary line.
// Singleton groups appear as a bare line.
//
// Color is applied only to the summary counters and disables itself when
// stdout is not a terminal, so piped output is plain text.
func PrintHuman(report *dupfind.Report, writer io.Writer) error {
	for _, group := range report.Groups {
		if _, err := fmt.Fprintln(writer, group.Canonical().Path); err != nil {
			return err
		}

		for _, duplicate := range group.Duplicates() {
			if _, err := fmt.Fprintln(writer, indent+duplicate.Path); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(writer, "Unique files: %s. %s files waste %d Bytes.\n",
		green.Sprintf("%d", report.UniqueFiles),
		red.Sprintf("%d", report.DuplicateFiles),
		report.WastedBytes,
	)

	return err
}

// PrintMachine writes only the duplicate paths, one per line, in the
// same group and member order as human output. No indentation, no
// summary, no blank lines: the output is meant for line-oriented piping
// into downstream tools.
func PrintMachine(report *dupfind.Report, writer io.Writer) error {
	for _, group := range report.Groups {
		for _, duplicate := range group.Duplicates() {
			if _, err := fmt.Fprintln(writer, duplicate.Path); err != nil {
				return err
			}
		}
	}

	return nil
}
