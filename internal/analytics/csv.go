package analytics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyRoster is returned when a CSV export is requested with no players.
var ErrEmptyRoster = errors.New("cannot export analytics without any players")

// WriteCSV renders a report as a CSV document: a summary block, a blank
// line, then one row per player in report order.
func WriteCSV(report GameReport) (string, error) {
	if report.RosterSize == 0 {
		return "", ErrEmptyRoster
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	summary := [][]string{
		{"Sideline Timekeeper Report"},
		{"Generated", report.GeneratedAt.Format("2006-01-02T15:04:05")},
		{"Roster Size", strconv.Itoa(report.RosterSize)},
		{"Elapsed Seconds", strconv.Itoa(report.ElapsedSeconds)},
		{"Regulation Seconds", strconv.Itoa(report.RegulationSeconds)},
		{"Stoppage Seconds", strconv.Itoa(report.StoppageSeconds)},
		{"Adjustment Seconds", strconv.Itoa(report.AdjustmentSeconds)},
		{"Target Seconds Total", strconv.Itoa(report.TargetSecondsTotal)},
		{"Target Seconds Per Player", strconv.Itoa(report.TargetSecondsPerPlayer)},
		{"Average Seconds", strconv.FormatFloat(round2(report.AverageSeconds), 'f', -1, 64)},
		{"Median Seconds", strconv.FormatFloat(round2(report.MedianSeconds), 'f', -1, 64)},
		{"Minimum Seconds", strconv.Itoa(report.MinSeconds)},
		{"Maximum Seconds", strconv.Itoa(report.MaxSeconds)},
		{"Players Under Target", strconv.Itoa(report.FairnessCounts[FairnessUnder])},
		{"Players On Target", strconv.Itoa(report.FairnessCounts[FairnessOK])},
		{"Players Over Target", strconv.Itoa(report.FairnessCounts[FairnessOver])},
	}
	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	if err := w.Write([]string{}); err != nil {
		return "", fmt.Errorf("failed to write separator: %w", err)
	}

	header := []string{
		"Name", "Number", "Preferred Positions", "On Field", "Position",
		"Total Seconds", "Active Stint Seconds", "Cumulative Seconds",
		"Target Seconds", "Delta Seconds", "Bench Seconds",
		"Target Share (%)", "Fairness",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range report.Players {
		onField := "no"
		if p.OnField {
			onField = "yes"
		}
		row := []string{
			p.Name,
			p.Number,
			strings.Join(p.PreferredPositions, ", "),
			onField,
			p.Position,
			strconv.Itoa(p.TotalSeconds),
			strconv.Itoa(p.ActiveStintSeconds),
			strconv.Itoa(p.CumulativeSeconds),
			strconv.Itoa(p.TargetSeconds),
			strconv.Itoa(p.DeltaSeconds),
			strconv.Itoa(p.BenchSeconds),
			strconv.FormatFloat(round2(p.TargetShare*100), 'f', -1, 64),
			p.Fairness,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write player row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv writer: %w", err)
	}
	return buf.String(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
