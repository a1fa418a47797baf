// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WritePretty writes the human-readable report of results to w.
func WritePretty(w io.Writer, results []calculator.Result) {
	p := message.NewPrinter(language.LatinAmericanSpanish)
	for i, result := range results {
		_, _ = p.Fprintf(w, "--- Results for calculation %s (%s) ---\n", result.Name, result.Type)
		width := labelWidth(result.Report.Fields)
		for _, field := range result.Report.Fields {
			_, _ = p.Fprintf(w, "%s | %s\n", pad(field.Label, width), field.Pretty())
		}
		if table := result.Report.Table; table != nil && len(table.Rows) > 0 {
			_, _ = p.Fprintf(w, "\n%d periods\n", len(table.Rows))
			writePrettyTable(w, table)
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

func labelWidth(fields []calculator.Field) int {
	width := 0
	for _, field := range fields {
		if utf8.RuneCountInString(field.Label) > width {
			width = utf8.RuneCountInString(field.Label)
		}
	}
	return width
}

func writePrettyTable(w io.Writer, table *calculator.Table) {
	cells := make([][]string, len(table.Rows))
	widths := make([]int, len(table.Headers))
	for i, header := range table.Headers {
		widths[i] = len(header)
	}
	for r, row := range table.Rows {
		cells[r] = make([]string, len(row))
		for i, value := range row {
			cells[r][i] = calculator.Field{Kind: table.Kinds[i], Value: value}.Pretty()
			if n := utf8.RuneCountInString(cells[r][i]); n > widths[i] {
				widths[i] = n
			}
		}
	}

	underline := make([]string, len(table.Headers))
	for i := range table.Headers {
		underline[i] = strings.Repeat("_", widths[i])
	}
	writeRow(w, widths, table.Headers)
	writeRow(w, widths, underline)
	for _, row := range cells {
		writeRow(w, widths, row)
	}
}

func writeRow(w io.Writer, widths []int, cells []string) {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = pad(cell, widths[i])
	}
	_, _ = fmt.Fprintf(w, "%s\n", strings.TrimRight(strings.Join(padded, " | "), " "))
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// WriteCsv writes results to w as comma-separated values. Summary fields come
// first, one row each, followed by the breakdown table of every result that
// has one.
func WriteCsv(w io.Writer, results []calculator.Result) {
	_, _ = fmt.Fprintf(w, `"calculation","type","field","value"`+"\n")
	for _, result := range results {
		for _, field := range result.Report.Fields {
			_, _ = fmt.Fprintf(w, `"%s","%s","%s","%s"`+"\n",
				quote(result.Name), result.Type, field.Label, quote(field.Plain()))
		}
	}

	for _, result := range results {
		table := result.Report.Table
		if table == nil || len(table.Rows) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n")
		_, _ = fmt.Fprintf(w, `"calculation"`)
		for _, header := range table.Headers {
			_, _ = fmt.Fprintf(w, `,"%s"`, header)
		}
		_, _ = fmt.Fprintf(w, "\n")
		for _, row := range table.Rows {
			_, _ = fmt.Fprintf(w, `"%s"`, quote(result.Name))
			for i, value := range row {
				_, _ = fmt.Fprintf(w, `,"%s"`, calculator.Field{Kind: table.Kinds[i], Value: value}.Plain())
			}
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// quote escapes embedded double quotes the CSV way.
func quote(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
