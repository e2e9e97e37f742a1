package scorecard

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteText renders a view as plain text with markdown-style tables.
func WriteText(w io.Writer, v View) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "[%s]\n", v.Header.Status)
	fmt.Fprintf(bw, "%s %s  vs  %s %s\n", v.Header.Team1, v.Header.Score1, v.Header.Team2, v.Header.Score2)
	if v.Header.Result != nil {
		fmt.Fprintf(bw, "%s: %s\n", v.Header.Result.Title, v.Header.Result.Text)
	}
	bw.WriteString("\n")
	fmt.Fprintf(bw, "Toss: %s\n", v.Meta.Toss)
	fmt.Fprintf(bw, "Venue: %s\n", v.Meta.Venue)
	fmt.Fprintf(bw, "Player of the Match: %s\n", v.Meta.PlayerOfTheMatch)
	fmt.Fprintf(bw, "Run Rate: %s\n", v.Meta.CurrentRunRate)
	fmt.Fprintf(bw, "Result: %s\n", v.Meta.MatchResult)

	for _, p := range v.Innings {
		for _, t := range []Table{p.Batting, p.Bowling} {
			bw.WriteString("\n")
			bw.WriteString(t.Title + "\n")
			for _, line := range tableLines(t) {
				bw.WriteString(line + "\n")
			}
		}
	}
	return bw.Flush()
}

// WriteTable writes t without its title.
func WriteTable(w io.Writer, t Table) error {
	for _, line := range tableLines(t) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// tableLines pads every cell to its column's display width.
func tableLines(t Table) []string {
	rows := make([][]string, 0, len(t.Rows)+2)
	rows = append(rows, t.Columns)
	rows = append(rows, t.Rows...)
	if len(t.Totals) > 0 {
		rows = append(rows, t.Totals)
	}

	widths := make([]int, len(t.Columns))
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	out := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		out = append(out, formatRow(row, widths))
		if i == 0 {
			sep := make([]string, len(widths))
			for j, w := range widths {
				sep[j] = strings.Repeat("-", w)
			}
			out = append(out, formatRow(sep, widths))
		}
	}
	return out
}

func formatRow(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for j, w := range widths {
		cell := ""
		if j < len(row) {
			cell = row[j]
		}
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(cell, w))
		sb.WriteString(" |")
	}
	return sb.String()
}
