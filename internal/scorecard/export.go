package scorecard

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

func summaryRows(v View) [][]string {
	rows := [][]string{
		{"Status", v.Header.Status},
		{v.Header.Team1, v.Header.Score1},
		{v.Header.Team2, v.Header.Score2},
	}
	if v.Header.Result != nil {
		rows = append(rows, []string{v.Header.Result.Title, v.Header.Result.Text})
	}
	return append(rows,
		[]string{"Toss", v.Meta.Toss},
		[]string{"Venue", v.Meta.Venue},
		[]string{"Date", v.Meta.Date},
		[]string{"Player of the Match", v.Meta.PlayerOfTheMatch},
		[]string{"Run Rate", v.Meta.CurrentRunRate},
		[]string{"Result", v.Meta.MatchResult},
	)
}

func tableRows(t Table) [][]string {
	rows := make([][]string, 0, len(t.Rows)+2)
	rows = append(rows, t.Columns)
	rows = append(rows, t.Rows...)
	if len(t.Totals) > 0 {
		rows = append(rows, t.Totals)
	}
	return rows
}

// WriteCSV writes the summary and every table, separated by blank rows.
func WriteCSV(w io.Writer, v View) error {
	cw := csv.NewWriter(w)
	write := func(rows [][]string) error {
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(summaryRows(v)); err != nil {
		return err
	}
	for _, p := range v.Innings {
		for _, t := range []Table{p.Batting, p.Bowling} {
			if err := write([][]string{{}, {t.Title}}); err != nil {
				return err
			}
			if err := write(tableRows(t)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with a summary sheet and one sheet per table.
func WriteXLSX(w io.Writer, v View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRows(f, f.GetSheetName(0), summaryRows(v)); err != nil {
		return err
	}
	for _, p := range v.Innings {
		for _, t := range []Table{p.Batting, p.Bowling} {
			sheet := fmt.Sprintf("Innings %d %s", p.Number, t.Kind)
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("new sheet %q: %w", sheet, err)
			}
			if err := setRows(f, sheet, tableRows(t)); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func setRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
