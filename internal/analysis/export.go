package analysis

import (
	"encoding/csv"
	"io"
	"strings"
)

// ExportCSV writes the flattened key/value form of a text report.
//
// Every non-blank report line becomes exactly one row: lines containing a
// colon split on the FIRST colon into a trimmed (label, value) pair, lines
// without one become a single-column row as-is. The export is derived from the
// display text, not from the structured metrics: a lossy round-trip that is
// part of the contract.
func ExportCSV(w io.Writer, report string) error {
	cw := csv.NewWriter(w)

	for _, line := range strings.Split(report, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var record []string
		if i := strings.Index(line, ":"); i >= 0 {
			record = []string{
				strings.TrimSpace(line[:i]),
				strings.TrimSpace(line[i+1:]),
			}
		} else {
			record = []string{line}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
