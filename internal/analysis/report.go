package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// Report collects the sections a view wants rendered. Nil sections are skipped.
type Report struct {
	Title    string
	Dataset  *dataset.Dataset
	Columns  []ColumnProfile
	Records  []dataset.Record // table view rows
	Summary  *Summary
	StatName string
	Selected []StatValue
	Cross    *CrossTab
	Warnings []string

	// RecordColumns overrides Dataset.Columns for the records table.
	RecordColumns []string
}

// Markdown renders the report as GitHub-flavored markdown.
func (r *Report) Markdown() string {
	var b strings.Builder
	if r.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", r.Title)
	}
	if ds := r.Dataset; ds != nil {
		b.WriteString("## Dataset\n\n")
		if ds.Name != "" {
			fmt.Fprintf(&b, "- File: %s\n", ds.Name)
		}
		fmt.Fprintf(&b, "- Rows: %d\n", ds.Len())
		fmt.Fprintf(&b, "- Columns: %d\n\n", len(ds.Columns))
	}
	if len(r.Columns) > 0 {
		writeSchema(&b, r.Columns)
	}
	if r.Records != nil && r.Dataset != nil {
		cols := r.RecordColumns
		if cols == nil {
			cols = r.Dataset.Columns
		}
		fmt.Fprintf(&b, "## Records (%d)\n\n", len(r.Records))
		WriteTable(&b, cols, r.Records)
		b.WriteString("\n")
	}
	if r.Summary != nil {
		writeSummary(&b, r.Summary)
	}
	if len(r.Selected) > 0 {
		writeSelected(&b, r.Summary, r.StatName, r.Selected)
	}
	if r.Cross != nil {
		writeCross(&b, r.Cross)
	}
	notes := append([]string(nil), r.Warnings...)
	if r.Summary != nil {
		for _, w := range r.Summary.Warnings {
			notes = append(notes, w.Error())
		}
	}
	if len(notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, n := range notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// HTML renders the markdown as a complete HTML page.
func (r *Report) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	title := r.Title
	if title == "" {
		title = "rosterlens report"
	}
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	return markdown.ToHTML([]byte(r.Markdown()), p, renderer)
}

func writeSchema(b *strings.Builder, cols []ColumnProfile) {
	b.WriteString("## Schema\n\n")
	for _, c := range cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		fmt.Fprintf(b, "- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct)
		switch c.Kind {
		case KindNumeric:
			fmt.Fprintf(b, "; min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std)
		case KindCategorical:
			b.WriteString("; top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(b, "%s(%d)", safeVal(kv.Value), kv.Count)
			}
			if c.Unique > len(c.TopValues) {
				fmt.Fprintf(b, "; unique=%d", c.Unique)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, s *Summary) {
	fmt.Fprintf(b, "## %s by %s\n\n", safeName(s.ValueColumn), safeName(s.GroupColumn))
	fmt.Fprintf(b, "| %s | Count | Mean | Std | Min | 25%% | 50%% | 75%% | Max | Sum |\n", safeName(s.GroupColumn))
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: | ---: | ---: | ---: |\n")
	for _, g := range s.Groups {
		fmt.Fprintf(b, "| %s | %d ", groupLabel(g.Key), g.Count)
		if d := g.Stats; d != nil {
			fmt.Fprintf(b, "| %.2f | %.2f | %s | %s | %s | %s | %s | %s |\n",
				d.Mean, d.Std, num(d.Min), num(d.Q25), num(d.Q50), num(d.Q75), num(d.Max), num(d.Sum))
		} else {
			b.WriteString(strings.Repeat("| n/a ", 8))
			b.WriteString("|\n")
		}
	}
	b.WriteString("\n")
}

func writeSelected(b *strings.Builder, s *Summary, stat string, vals []StatValue) {
	group, value := "Group", "Value"
	if s != nil {
		group, value = safeName(s.GroupColumn), safeName(s.ValueColumn)
	}
	fmt.Fprintf(b, "## %s of %s\n\n", strings.ToLower(stat), value)
	fmt.Fprintf(b, "| %s | %s |\n| --- | ---: |\n", group, stat)
	for _, v := range vals {
		cell := "n/a"
		if v.Defined {
			cell = strconv.FormatFloat(v.Value, 'f', 2, 64)
		}
		fmt.Fprintf(b, "| %s | %s |\n", groupLabel(v.Key), cell)
	}
	b.WriteString("\n")
}

func writeCross(b *strings.Builder, ct *CrossTab) {
	fmt.Fprintf(b, "## %s by %s and %s interval\n\n", safeName(ct.ValueColumn), safeName(ct.GroupColumn), safeName(ct.BinColumn))
	fmt.Fprintf(b, "| %s | Interval | Count | Mean | Min | Median | Max |\n", safeName(ct.GroupColumn))
	b.WriteString("| --- | --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, c := range ct.Cells {
		fmt.Fprintf(b, "| %s | %s | %d ", groupLabel(c.Group), c.Interval, c.Summary.Count)
		if d := c.Summary.Stats; d != nil {
			fmt.Fprintf(b, "| %.2f | %s | %s | %s |\n", d.Mean, num(d.Min), num(d.Median), num(d.Max))
		} else {
			b.WriteString("| n/a | n/a | n/a | n/a |\n")
		}
	}
	if ct.Unbinned > 0 {
		fmt.Fprintf(b, "\n%d record(s) outside every %s interval were excluded.\n", ct.Unbinned, safeName(ct.BinColumn))
	}
	b.WriteString("\n")
}

// WriteTable renders records as a pipe table over cols.
func WriteTable(b *strings.Builder, cols []string, records []dataset.Record) {
	b.WriteString("|")
	for _, c := range cols {
		b.WriteString(" ")
		b.WriteString(safeName(c))
		b.WriteString(" |")
	}
	b.WriteString("\n|")
	for range cols {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, rec := range records {
		b.WriteString("|")
		for _, c := range cols {
			val := truncate(rec[c], 80)
			b.WriteString(" ")
			b.WriteString(safeVal(val))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func num(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func groupLabel(k string) string {
	if strings.TrimSpace(k) == "" {
		return "(blank)"
	}
	return safeVal(k)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
