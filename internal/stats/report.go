// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/gallop/internal/model"
)

// RenderSummary prints aggregate metrics for the stored result history.
func RenderSummary(w io.Writer, records []model.ResultRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results recorded yet.")
		return err
	}
	var totalWPM, totalAcc, bestWPM float64
	for _, rec := range records {
		totalWPM += rec.WPM
		totalAcc += rec.Accuracy
		if rec.WPM > bestWPM {
			bestWPM = rec.WPM
		}
	}
	count := float64(len(records))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Tests: %d\n", len(records)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}

	wpms := make([]float64, len(records))
	for i, rec := range records {
		wpms[i] = rec.WPM
	}
	spark := Sparkline(Resample(wpms, TerminalWidth()-6))
	if _, err := fmt.Fprintf(w, "WPM:  %s\n", spark); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCharTable prints per-character aggregates sorted by lowest accuracy,
// marking the weakest characters.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate, weakSet map[rune]struct{}) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	type row struct {
		char      string
		acc       float64
		correct   int
		incorrect int
		weak      bool
	}
	rows := make([]row, 0, len(aggs))
	for _, agg := range aggs {
		charLabel := agg.Char
		weak := false
		if runes := []rune(agg.Char); len(runes) > 0 {
			_, weak = weakSet[runes[0]]
		}
		if charLabel == " " {
			charLabel = "<space>"
		}
		rows = append(rows, row{
			char:      charLabel,
			acc:       charAccuracy(agg),
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
			weak:      weak,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].char < rows[j].char
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Correct", "Incorrect", ""}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		mark := ""
		if r.weak {
			mark = "weak"
		}
		tableRows = append(tableRows, []string{
			r.char,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
			mark,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
