package report

import (
	"fmt"
	"interview-harvest/lib/ingest"
	"interview-harvest/lib/warehouse"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const questionPreview = 120

func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// GroupCounts renders at most limit groups, limit <= 0 renders all.
func GroupCounts(w io.Writer, title, column string, counts []warehouse.GroupCount, limit int) {
	t := NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{column, "Questions"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	for i, gc := range counts {
		if limit > 0 && i >= limit {
			break
		}
		t.AppendRow(table.Row{gc.Key, gc.Count})
	}
	t.Render()
}

func Rows(w io.Writer, title string, rows []warehouse.Row) {
	t := NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Company", "Difficulty", "Source", "Question"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.CompanyName,
			r.Difficulty,
			r.Source,
			truncate(r.InterviewQuestion, questionPreview),
		})
	}
	t.Render()
}

// Collect renders the result of a collect run with its quality metrics.
func Collect(w io.Writer, result ingest.CollectReport, topCompanies int) Summary {
	s := Summarize(result.Records)

	t := NewTable(w)
	t.SetTitle(fmt.Sprintf("%s run %s", result.Collector, result.RunID))
	t.AppendRows([]table.Row{
		{"Raw records", result.Raw},
		{"Unique questions", s.Total},
		{"Saved to", result.File},
	})
	if result.Remote != "" {
		t.AppendRow(table.Row{"Uploaded to", result.Remote})
	}
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Company-specific", fmt.Sprintf("%d (%s)", s.Specific, percent(s.Specific, s.Total))},
		{"Multiple companies", fmt.Sprintf("%d (%s)", s.Total-s.Specific, percent(s.Total-s.Specific, s.Total))},
		{"Verdict", s.Verdict().String()},
	})
	t.Render()

	GroupCounts(w, "Questions by company", "Company", s.ByCompany, topCompanies)
	GroupCounts(w, "Questions by difficulty", "Difficulty", s.ByDifficulty, 0)
	return s
}

// Load renders the counts of a load run. It is also useful after a failed
// load: the trace shows how far the run got.
func Load(w io.Writer, result ingest.LoadReport) {
	trace := make([]string, len(result.Trace))
	for i, s := range result.Trace {
		trace[i] = s.String()
	}

	t := NewTable(w)
	t.SetTitle("Load " + result.Source)
	t.AppendRows([]table.Row{
		{"Rows read", result.Read},
		{"Unique records", result.Unique},
		{"Rows before", result.Before},
		{"Rows after", result.After},
		{"Inserted", result.Inserted},
		{"Trace", strings.Join(trace, " > ")},
	})
	t.Render()
}

func Suggestions(w io.Writer, term string, suggestions []Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(w, "no companies matching %q\n", term)
		return
	}
	t := NewTable(w)
	t.SetTitle(fmt.Sprintf("No companies matching %q, did you mean", term))
	t.AppendHeader(table.Row{"Company", "Similarity"})
	for _, s := range suggestions {
		t.AppendRow(table.Row{s.Company, fmt.Sprintf("%.2f", s.Similarity)})
	}
	t.Render()
}
