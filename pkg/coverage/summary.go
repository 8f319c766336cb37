package coverage

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cockroachdb/errors"

	errUtils "github.com/cloverkit/cloverkit/errors"
)

const (
	colorBorder = "#5F5FD7"
	colorHeader = "#2ECC71"
	colorLow    = "#FF0000"

	defaultPackage = "(default)"
)

// Row is the coverage of one package.
type Row struct {
	Package string  `yaml:"package" json:"package"`
	Metrics Metrics `yaml:"metrics" json:"metrics"`
}

// Summary is the project total and its packages.
type Summary struct {
	Project string  `yaml:"project" json:"project"`
	Total   Metrics `yaml:"total" json:"total"`
	Rows    []Row   `yaml:"packages" json:"packages"`
}

// Summarize builds a Summary sorted by package name. Files in the default
// package are folded into one row.
func Summarize(r *Report) Summary {
	s := Summary{Project: r.Project.Name, Total: r.Project.Metrics}
	for _, p := range r.Project.Packages {
		s.Rows = append(s.Rows, Row{Package: p.Name, Metrics: p.Metrics})
	}
	if len(r.Project.Files) > 0 {
		var m Metrics
		for _, f := range r.Project.Files {
			m = m.add(f.Metrics)
		}
		s.Rows = append(s.Rows, Row{Package: defaultPackage, Metrics: m})
	}
	sort.Slice(s.Rows, func(i, j int) bool { return s.Rows[i].Package < s.Rows[j].Package })
	return s
}

func (m Metrics) add(o Metrics) Metrics {
	m.Statements += o.Statements
	m.CoveredStatements += o.CoveredStatements
	m.Conditionals += o.Conditionals
	m.CoveredConditionals += o.CoveredConditionals
	m.Methods += o.Methods
	m.CoveredMethods += o.CoveredMethods
	m.Elements += o.Elements
	m.CoveredElements += o.CoveredElements
	return m
}

// Check fails with ErrCoverageBelowTarget when the total is under target.
// A project with nothing to cover passes.
func (s Summary) Check(target float64) error {
	pct, ok := s.Total.TotalPercent()
	if !ok || pct >= target {
		return nil
	}
	return errUtils.Build(errors.Wrapf(errUtils.ErrCoverageBelowTarget, "%s < %s", formatPercent(pct, true), formatPercent(target, true))).
		WithContext("project", s.Project).
		WithExitCode(3).
		Err()
}

// Render draws the summary as a table.
func (s Summary) Render(useColor bool, target float64) string {
	rows := make([][]string, 0, len(s.Rows)+1)
	for _, r := range s.Rows {
		rows = append(rows, row(r.Package, r.Metrics))
	}
	rows = append(rows, row("Total", s.Total))
	totalRow := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Package", "Statements", "Branches", "Methods", "TPC").
		Rows(rows...)

	if useColor {
		t = t.
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))).
			StyleFunc(func(rowIdx, col int) lipgloss.Style {
				style := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
				switch {
				case rowIdx == table.HeaderRow:
					return style.Foreground(lipgloss.Color(colorHeader)).Bold(true)
				case rowIdx == totalRow:
					style = style.Bold(true)
				}
				if col == 4 && target > 0 {
					m := s.Total
					if rowIdx >= 0 && rowIdx < len(s.Rows) {
						m = s.Rows[rowIdx].Metrics
					}
					if pct, ok := m.TotalPercent(); ok && pct < target {
						return style.Foreground(lipgloss.Color(colorLow))
					}
				}
				return style
			})
	}

	return t.String()
}

func row(name string, m Metrics) []string {
	pct, ok := m.TotalPercent()
	return []string{
		name,
		ratio(m.CoveredStatements, m.Statements),
		ratio(m.CoveredConditionals, m.Conditionals),
		ratio(m.CoveredMethods, m.Methods),
		formatPercent(pct, ok),
	}
}

func ratio(covered, total int) string {
	return fmt.Sprintf("%d/%d", covered, total)
}

func formatPercent(pct float64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
