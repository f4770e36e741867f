package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/markov"
	"github.com/lox/monopoly-markov/internal/statistics"
)

// ColorMode controls whether console output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Console renders tables to a terminal.
type Console struct {
	w io.Writer

	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	label  lipgloss.Style
	high   lipgloss.Style
	border lipgloss.Style
}

// NewConsole returns a console writing to w. ColorAuto detects the terminal
// capabilities of w.
func NewConsole(w io.Writer, mode ColorMode) *Console {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	}

	return &Console{
		w: w,

		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Padding(0, 1),

		cell:   r.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		label:  r.NewStyle().Padding(0, 1),
		high:   r.NewStyle().Padding(0, 1).Align(lipgloss.Right).Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		border: r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

func percent(p float64) string {
	return fmt.Sprintf("%.3f%%", p*100)
}

// render prints a titled table. Columns before labelCols are left aligned;
// cells equal to the column maximum are highlighted.
func (c *Console) render(title string, headers []string, rows [][]string, labelCols int, highlight func(row, col int) bool) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(c.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return c.header
			case col < labelCols:
				return c.label
			case highlight != nil && highlight(row, col):
				return c.high
			default:
				return c.cell
			}
		})

	fmt.Fprintln(c.w, c.title.Render(title))
	fmt.Fprintln(c.w, t.Render())
}

// columnMax returns a highlight func marking the largest value per column.
func columnMax(values [][]float64) func(row, col int) bool {
	return func(row, col int) bool {
		if row < 0 || row >= len(values) || col >= len(values[row]) {
			return false
		}
		v := values[row][col]
		if v == 0 {
			return false
		}
		for r := range values {
			if values[r][col] > v {
				return false
			}
		}
		return true
	}
}

// Positions prints the steady state probability of every space, one column
// per chain.
func (c *Console) Positions(chains []*markov.TransMatrix) {
	headers := []string{"#", "Space", "Name"}
	vectors := make([][]float64, len(chains))
	for i, tm := range chains {
		headers = append(headers, tm.Strategy().Name())
		vectors[i] = markov.PositionVector(tm)
	}

	rows := make([][]string, board.Size)
	values := make([][]float64, board.Size)
	for pos := 0; pos < board.Size; pos++ {
		space := board.At(pos)
		rows[pos] = []string{fmt.Sprint(pos), space.ShortDesc(), space.Name()}
		values[pos] = make([]float64, 3+len(chains))
		for i, v := range vectors {
			rows[pos] = append(rows[pos], percent(v[pos]))
			values[pos][3+i] = v[pos]
		}
	}
	c.render("Steady state by space", headers, rows, 3, columnMax(values))
}

// Sets prints the steady state probability of every property set.
func (c *Console) Sets(chains []*markov.TransMatrix) {
	headers := []string{"Set"}
	var keys []board.PropertySet
	byChain := make([]map[board.PropertySet]float64, len(chains))
	for i, tm := range chains {
		headers = append(headers, tm.Strategy().Name())
		byChain[i] = make(map[board.PropertySet]float64)
		for _, g := range markov.Summarize(tm, markov.BySet) {
			if i == 0 {
				keys = append(keys, g.Key)
			}
			byChain[i][g.Key] = g.Probability
		}
	}

	rows := make([][]string, len(keys))
	for r, k := range keys {
		rows[r] = []string{k.String()}
		for i := range chains {
			rows[r] = append(rows[r], percent(byChain[i][k]))
		}
	}
	c.render("Steady state by set", headers, rows, 1, nil)
}

// Reasons prints how each space is reached under one chain, restricted to
// reasons that occur.
func (c *Console) Reasons(tm *markov.TransMatrix) {
	reasons := tm.Reasons()
	used := reasons.Used()

	headers := []string{"Space"}
	for _, r := range used {
		headers = append(headers, r.String())
	}
	headers = append(headers, "Total")

	rows := make([][]string, board.Size)
	for pos := 0; pos < board.Size; pos++ {
		rows[pos] = []string{board.At(pos).ShortDesc()}
		for _, r := range used {
			rows[pos] = append(rows[pos], percent(reasons.At(r, pos)))
		}
		rows[pos] = append(rows[pos], percent(reasons.Column(pos)))
	}
	c.render(fmt.Sprintf("Arrivals by reason (%s)", tm.Strategy().Name()), headers, rows, 1, nil)
}

// States prints the canonical state index map.
func (c *Console) States(ss *markov.StateSpace) {
	rows := make([][]string, 0, ss.Len())
	for i, s := range ss.States() {
		rows = append(rows, []string{
			fmt.Sprint(i), s.String(), fmt.Sprint(s.Position), fmt.Sprint(s.Doubles), fmt.Sprint(s.JailAttempt),
		})
	}
	c.render(fmt.Sprintf("%d canonical states", ss.Len()), []string{"Index", "State", "Position", "Doubles", "Jail"}, rows, 2, nil)
}

// Simulation prints simulated shares beside the exact steady state.
func (c *Console) Simulation(l *statistics.Ledger, expected []float64) {
	rows := make([][]string, board.Size)
	for pos := 0; pos < board.Size; pos++ {
		low, high := l.ConfidenceInterval95(pos)
		exp := expected[pos]
		mark := ""
		if exp < low || exp > high {
			mark = "*"
		}
		rows[pos] = []string{
			board.At(pos).ShortDesc(),
			fmt.Sprint(l.Positions[pos]),
			percent(l.Share(pos)),
			percent(exp),
			fmt.Sprintf("%+.3f%s", (l.Share(pos)-exp)*100, mark),
		}
	}
	c.render(fmt.Sprintf("Simulation over %d rolls", l.Rolls),
		[]string{"Space", "Arrivals", "Simulated", "Exact", "Diff"}, rows, 1, nil)

	fmt.Fprintf(c.w, "Turns: %d  doubles per turn: 0=%s 1=%s 2=%s 3=%s\n", l.Turns,
		percent(l.DoublesShare(0)), percent(l.DoublesShare(1)),
		percent(l.DoublesShare(2)), percent(l.DoublesShare(3)))
}
