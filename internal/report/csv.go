// Package report renders solved chains and simulation ledgers as CSV files
// and styled console tables.
package report

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/fileutil"
	"github.com/lox/monopoly-markov/internal/markov"
	"github.com/lox/monopoly-markov/internal/statistics"
)

// Format selects how exact matrix entries are written.
type Format int

const (
	Fraction Format = iota
	Float
)

func (f Format) String() string {
	if f == Fraction {
		return "frac"
	}
	return "float"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteMatrix writes m with a header of column labels and a label per row.
func WriteMatrix(w io.Writer, m *markov.Matrix, rowLabels, colLabels []string, format Format) error {
	rows, cols := m.Dims()
	if len(rowLabels) != rows || len(colLabels) != cols {
		return fmt.Errorf("matrix is %dx%d but got %d row and %d column labels",
			rows, cols, len(rowLabels), len(colLabels))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, colLabels...)); err != nil {
		return err
	}
	record := make([]string, cols+1)
	for i := 0; i < rows; i++ {
		record[0] = rowLabels[i]
		for j := 0; j < cols; j++ {
			p := m.At(i, j)
			if format == Fraction {
				record[j+1] = p.String()
			} else {
				record[j+1] = formatFloat(p.Float64())
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSteady writes one row per canonical state with its steady state
// probability.
func WriteSteady(w io.Writer, tm *markov.TransMatrix) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"index", "state", "position", "space", "doubles", "jail_attempt", "probability"})
	steady := tm.Steady()
	for i, s := range tm.States().States() {
		cw.Write([]string{
			strconv.Itoa(i),
			s.String(),
			strconv.Itoa(s.Position),
			s.Space().Name(),
			strconv.Itoa(s.Doubles),
			strconv.Itoa(s.JailAttempt),
			formatFloat(steady[i]),
		})
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes grouped probabilities with label naming each key.
func WriteSummary[K cmp.Ordered](w io.Writer, groups []markov.Group[K], header string, label func(K) string) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{header, "probability"})
	for _, g := range groups {
		cw.Write([]string{label(g.Key), formatFloat(g.Probability)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteReasons writes the attribution table with one row per reason and one
// column per space, followed by a total row.
func WriteReasons(w io.Writer, table *markov.ReasonTable) error {
	cw := csv.NewWriter(w)
	cw.Write(append([]string{"reason"}, spaceLabels()...))
	for _, r := range markov.Reasons() {
		record := []string{r.String()}
		for _, v := range table.Row(r) {
			record = append(record, formatFloat(v))
		}
		cw.Write(record)
	}
	total := []string{"Total"}
	for space := 0; space < board.Size; space++ {
		total = append(total, formatFloat(table.Column(space)))
	}
	cw.Write(total)
	cw.Flush()
	return cw.Error()
}

// WriteLedger writes simulated shares per space beside the expected values.
// expected may be nil.
func WriteLedger(w io.Writer, l *statistics.Ledger, expected []float64) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"position", "space", "arrivals", "share", "stderr", "expected"})
	for i := 0; i < board.Size; i++ {
		exp := ""
		if i < len(expected) {
			exp = formatFloat(expected[i])
		}
		cw.Write([]string{
			strconv.Itoa(i),
			board.At(i).ShortDesc(),
			strconv.Itoa(l.Positions[i]),
			formatFloat(l.Share(i)),
			formatFloat(l.StdError(i)),
			exp,
		})
	}
	cw.Flush()
	return cw.Error()
}

func spaceLabels() []string {
	out := make([]string, board.Size)
	for i := range out {
		out[i] = board.At(i).ShortDesc()
	}
	return out
}

func stateLabels(ss *markov.StateSpace) []string {
	out := make([]string, ss.Len())
	for i, s := range ss.States() {
		out[i] = s.String()
	}
	return out
}

// Options selects which CSV files WriteAll produces.
type Options struct {
	Dir       string
	Fractions bool
	Floats    bool
}

// WriteAll writes every CSV report for tm into opts.Dir and returns the paths
// written.
func WriteAll(tm *markov.TransMatrix, opts Options, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	if err := fileutil.EnsureDir(opts.Dir); err != nil {
		return nil, err
	}
	prefix := tm.Strategy().Name()
	var written []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(opts.Dir, prefix+"_"+name+".csv")
		if err := fileutil.WriteAtomic(path, 0o644, fn); err != nil {
			return err
		}
		logger.Debug("Wrote report", "path", path)
		written = append(written, path)
		return nil
	}

	var formats []Format
	if opts.Fractions {
		formats = append(formats, Fraction)
	}
	if opts.Floats {
		formats = append(formats, Float)
	}

	spaces := spaceLabels()
	states := stateLabels(tm.States())
	for _, f := range formats {
		matrices := []struct {
			name   string
			m      *markov.Matrix
			labels []string
		}{
			{"jump", tm.JumpMatrix(), spaces},
			{"move", tm.MoveMatrix(), states},
			{"combined", tm.CombinedMatrix(), states},
		}
		for _, mx := range matrices {
			err := write(mx.name+"_"+f.String(), func(w io.Writer) error {
				return WriteMatrix(w, mx.m, mx.labels, mx.labels, f)
			})
			if err != nil {
				return written, err
			}
		}
	}

	reports := []struct {
		name string
		fn   func(io.Writer) error
	}{
		{"steady", func(w io.Writer) error { return WriteSteady(w, tm) }},
		{"by_space", func(w io.Writer) error {
			return WriteSummary(w, markov.Summarize(tm, markov.ByPosition), "space",
				func(i int) string { return board.At(i).ShortDesc() })
		}},
		{"by_set", func(w io.Writer) error {
			return WriteSummary(w, markov.Summarize(tm, markov.BySet), "set", board.PropertySet.String)
		}},
		{"reasons", func(w io.Writer) error { return WriteReasons(w, tm.Reasons()) }},
	}
	for _, r := range reports {
		if err := write(r.name, r.fn); err != nil {
			return written, err
		}
	}
	return written, nil
}
