package summary

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

const ruleWidth = 50

var headingStyle = lipgloss.NewStyle().Bold(true) //nolint:gochecknoglobals // shared style

// statRows lists the describe rows in display order.
var statRows = []struct { //nolint:gochecknoglobals // fixed aggregate set
	name string
	get  func(Stats) string
}{
	{"count", func(s Stats) string { return strconv.Itoa(s.Count) }},
	{"mean", func(s Stats) string { return formatStat(s.Mean) }},
	{"std", func(s Stats) string { return formatStat(s.Std) }},
	{"min", func(s Stats) string { return formatStat(s.Min) }},
	{"25%", func(s Stats) string { return formatStat(s.Q1) }},
	{"50%", func(s Stats) string { return formatStat(s.Median) }},
	{"75%", func(s Stats) string { return formatStat(s.Q3) }},
	{"max", func(s Stats) string { return formatStat(s.Max) }},
}

// String renders the report as text.
func (r Report) String() string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}

// WriteTo writes the human-readable report to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Data Summary:"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", ruleWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Number of students: %d\n", r.NumEntities())
	fmt.Fprintf(&b, "Number of subjects: %d\n", r.NumDimensions())
	fmt.Fprintf(&b, "Subjects: %s\n", strings.Join(r.Dimensions, ", "))
	fmt.Fprintf(&b, "Students: %s\n", strings.Join(r.Entities, ", "))

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Data preview:"))
	b.WriteString("\n")
	b.WriteString(r.previewTable())
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Data statistics:"))
	b.WriteString("\n")
	b.WriteString(r.statsTable())
	b.WriteString("\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (r Report) previewTable() string {
	headers := append([]string{r.IndexName}, r.Dimensions...)
	t := ltable.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for i, row := range r.Preview {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, r.Entities[i])
		for _, v := range row {
			cells = append(cells, strconv.FormatFloat(v, 'f', -1, 64))
		}
		t.Row(cells...)
	}
	return t.String()
}

func (r Report) statsTable() string {
	headers := append([]string{""}, r.Dimensions...)
	t := ltable.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for _, sr := range statRows {
		cells := make([]string, 0, len(r.Stats)+1)
		cells = append(cells, sr.name)
		for _, s := range r.Stats {
			cells = append(cells, sr.get(s))
		}
		t.Row(cells...)
	}
	return t.String()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
