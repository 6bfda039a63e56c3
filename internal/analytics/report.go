package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/oskarlind/sideline/internal/game"
)

// FairnessThresholdSeconds is the band around the equal-share target inside
// which playing time counts as fair. +/- 2 minutes is treated as notable
// variance.
const FairnessThresholdSeconds = 120

// Fairness labels.
const (
	FairnessUnder = "under"
	FairnessOK    = "ok"
	FairnessOver  = "over"
)

var fairnessOrder = map[string]int{
	FairnessUnder: 0,
	FairnessOK:    1,
	FairnessOver:  2,
}

// PlayerTimeSummary is one report row for a roster player.
type PlayerTimeSummary struct {
	Name               string   `json:"name"`
	Number             string   `json:"number,omitempty"`
	PreferredPositions []string `json:"preferred_positions"`
	OnField            bool     `json:"on_field"`
	Position           string   `json:"position,omitempty"`
	TotalSeconds       int      `json:"total_seconds"`
	ActiveStintSeconds int      `json:"active_stint_seconds"`
	CumulativeSeconds  int      `json:"cumulative_seconds"`
	TargetSeconds      int      `json:"target_seconds"`
	DeltaSeconds       int      `json:"delta_seconds"`
	BenchSeconds       int      `json:"bench_seconds"`
	TargetShare        float64  `json:"target_share"`
	Fairness           string   `json:"fairness"`
}

// GameReport is the full fairness snapshot. It is recomputed on every
// request and owns no mutable state.
type GameReport struct {
	GeneratedAt            time.Time           `json:"generated_ts"`
	RosterSize             int                 `json:"roster_size"`
	RegulationSeconds      int                 `json:"regulation_seconds"`
	StoppageSeconds        int                 `json:"stoppage_seconds"`
	AdjustmentSeconds      int                 `json:"adjustment_seconds"`
	ElapsedSeconds         int                 `json:"elapsed_seconds"`
	TargetSecondsTotal     int                 `json:"target_seconds_total"`
	TargetSecondsPerPlayer int                 `json:"target_seconds_per_player"`
	Players                []PlayerTimeSummary `json:"players"`
	AverageSeconds         float64             `json:"average_seconds"`
	MedianSeconds          float64             `json:"median_seconds"`
	MinSeconds             int                 `json:"min_seconds"`
	MaxSeconds             int                 `json:"max_seconds"`
	FairnessCounts         map[string]int      `json:"fairness_counts"`
}

// Report builds the fairness report for the current moment. It is a pure
// read: neither the roster nor the clock state is touched.
func Report(state *game.GameState, timer *game.TimerService) GameReport {
	cfg := timer.Configuration()
	elapsed := timer.GameElapsedSeconds()
	now := timer.Now()

	rosterSize := len(state.Roster)
	targetTotal := cfg.GameLengthSeconds + cfg.TotalStoppageSeconds + cfg.TotalAdjustmentSeconds
	if targetTotal < 0 {
		targetTotal = 0
	}

	var targetPerPlayer float64
	targetPerPlayerInt := 0
	if rosterSize > 0 {
		targetPerPlayer = float64(targetTotal) / float64(rosterSize)
		targetPerPlayerInt = int(math.Round(targetPerPlayer))
	}

	summaries := make([]PlayerTimeSummary, 0, rosterSize)
	for _, p := range state.Roster {
		stint := p.CurrentStintSeconds(now)
		cumulative := p.TotalSeconds + stint
		delta := int(math.Round(float64(cumulative) - targetPerPlayer))

		bench := 0
		if elapsed > 0 {
			bench = elapsed - cumulative
			if bench < 0 {
				bench = 0
			}
		}
		share := 0.0
		if targetPerPlayer > 0 {
			share = float64(cumulative) / targetPerPlayer
		}

		summaries = append(summaries, PlayerTimeSummary{
			Name:               p.Name,
			Number:             p.Number,
			PreferredPositions: p.PreferredList(),
			OnField:            p.OnField,
			Position:           p.Position,
			TotalSeconds:       p.TotalSeconds,
			ActiveStintSeconds: stint,
			CumulativeSeconds:  cumulative,
			TargetSeconds:      targetPerPlayerInt,
			DeltaSeconds:       delta,
			BenchSeconds:       bench,
			TargetShare:        share,
			Fairness:           ClassifyFairness(delta),
		})
	}

	// Under-target players surface first; ties break by most-under, then
	// alphabetically.
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if fairnessOrder[a.Fairness] != fairnessOrder[b.Fairness] {
			return fairnessOrder[a.Fairness] < fairnessOrder[b.Fairness]
		}
		if a.DeltaSeconds != b.DeltaSeconds {
			return a.DeltaSeconds < b.DeltaSeconds
		}
		return a.Name < b.Name
	})

	totals := make([]int, len(summaries))
	counts := map[string]int{FairnessUnder: 0, FairnessOK: 0, FairnessOver: 0}
	for i, s := range summaries {
		totals[i] = s.CumulativeSeconds
		counts[s.Fairness]++
	}

	return GameReport{
		GeneratedAt:            now,
		RosterSize:             rosterSize,
		RegulationSeconds:      cfg.GameLengthSeconds,
		StoppageSeconds:        cfg.TotalStoppageSeconds,
		AdjustmentSeconds:      cfg.TotalAdjustmentSeconds,
		ElapsedSeconds:         elapsed,
		TargetSecondsTotal:     targetTotal,
		TargetSecondsPerPlayer: targetPerPlayerInt,
		Players:                summaries,
		AverageSeconds:         mean(totals),
		MedianSeconds:          median(totals),
		MinSeconds:             minOf(totals),
		MaxSeconds:             maxOf(totals),
		FairnessCounts:         counts,
	}
}

// ClassifyFairness buckets a signed delta against the equal-share target.
func ClassifyFairness(deltaSeconds int) string {
	if deltaSeconds <= -FairnessThresholdSeconds {
		return FairnessUnder
	}
	if deltaSeconds >= FairnessThresholdSeconds {
		return FairnessOver
	}
	return FairnessOK
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(sumOf(values)) / float64(len(values))
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func sumOf(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func minOf(values []int) int {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []int) int {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
