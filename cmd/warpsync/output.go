package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/warpsync/dtw"
	"github.com/katalvlaran/warpsync/feature"
)

// pathEntry is one warping-path step as written to JSON output.
// T1 and T2 are omitted when the sequence carries no time step.
type pathEntry struct {
	I    int      `json:"i"`
	J    int      `json:"j"`
	T1   *float64 `json:"t1,omitempty"`
	T2   *float64 `json:"t2,omitempty"`
	Cost float64  `json:"cost"`
}

type alignReport struct {
	Distance           float64     `json:"distance"`
	NormalizedDistance float64     `json:"normalized_distance"`
	Rows               int         `json:"rows"`
	Cols               int         `json:"cols"`
	Path               []pathEntry `json:"path"`
	// Accumulated carries D row by row; +Inf cells are encoded as null.
	Accumulated [][]*float64 `json:"accumulated,omitempty"`
}

func newAlignReport(res *dtw.Result, a, b feature.Sequence, withMatrix bool) (*alignReport, error) {
	report := &alignReport{
		Distance:           res.Distance,
		NormalizedDistance: res.NormalizedDistance,
		Rows:               res.Cost.Rows(),
		Cols:               res.Cost.Cols(),
		Path:               make([]pathEntry, len(res.Path)),
	}

	var times []dtw.TimePair
	if a.TimeStep > 0 && b.TimeStep > 0 {
		var err error
		times, err = dtw.MapTimes(res.Path, a.TimeStep, b.TimeStep)
		if err != nil {
			return nil, err
		}
	}

	for k, c := range res.Path {
		cost, err := res.Cost.At(c.I, c.J)
		if err != nil {
			return nil, err
		}
		entry := pathEntry{I: c.I, J: c.J, Cost: cost}
		if times != nil {
			t1, t2 := times[k].T1, times[k].T2
			entry.T1, entry.T2 = &t1, &t2
		}
		report.Path[k] = entry
	}

	if withMatrix {
		for _, row := range res.Accumulated.ToRows() {
			out := make([]*float64, len(row))
			for j, v := range row {
				if !math.IsInf(v, 0) {
					out[j] = &v
				}
			}
			report.Accumulated = append(report.Accumulated, out)
		}
	}

	return report, nil
}

func writeAlignReport(w io.Writer, report *alignReport, format string) error {
	if shouldUseTable(w, format) {
		fmt.Fprintf(w, "Distance:   %s\n", formatFloat(report.Distance))
		fmt.Fprintf(w, "Normalized: %s\n", formatFloat(report.NormalizedDistance))
		fmt.Fprintf(w, "Frames:     %d x %d\n", report.Rows, report.Cols)
		fmt.Fprintln(w, renderTable(pathHeaders(report), pathRows(report), []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight}))
		return nil
	}
	return writeJSON(w, report)
}

func pathHeaders(report *alignReport) []string {
	if len(report.Path) > 0 && report.Path[0].T1 != nil {
		return []string{"I", "J", "T1 (s)", "T2 (s)", "Cost"}
	}
	return []string{"I", "J", "Cost"}
}

func pathRows(report *alignReport) [][]string {
	rows := make([][]string, 0, len(report.Path))
	for _, p := range report.Path {
		row := []string{strconv.Itoa(p.I), strconv.Itoa(p.J)}
		if p.T1 != nil {
			row = append(row, strconv.FormatFloat(*p.T1, 'f', 3, 64), strconv.FormatFloat(*p.T2, 'f', 3, 64))
		}
		rows = append(rows, append(row, formatFloat(p.Cost)))
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// shouldUseTable resolves the "auto" format: tables on a terminal, JSON when
// the output is piped or captured.
func shouldUseTable(w io.Writer, format string) bool {
	switch format {
	case "table":
		return true
	case "json":
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
