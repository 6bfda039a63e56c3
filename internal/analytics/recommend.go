package analytics

import (
	"sort"

	"github.com/oskarlind/sideline/internal/game"
)

// preferredPositionScore is the weight a matching preferred position adds on
// top of the bench-time score.
const preferredPositionScore = 50

// PositionCandidate is one recommendation row: a bench player scored for a
// field position.
type PositionCandidate struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	Preferred    bool    `json:"preferred"`
	BenchSeconds int     `json:"bench_seconds"`
}

// RecommendForPosition ranks bench players for the given position. A player
// who lists the position as preferred scores higher; among equals the one
// with more bench time surfaces first, so recommendations pull playing time
// back toward even.
func RecommendForPosition(state *game.GameState, timer *game.TimerService, position string) []PositionCandidate {
	elapsed := timer.GameElapsedSeconds()
	now := timer.Now()

	var candidates []PositionCandidate
	for _, p := range state.Roster {
		if p.OnField {
			continue
		}
		bench := 0
		if elapsed > 0 {
			bench = elapsed - p.CumulativeSeconds(now)
			if bench < 0 {
				bench = 0
			}
		}
		preferred := false
		for _, pos := range p.PreferredList() {
			if pos == position {
				preferred = true
				break
			}
		}
		score := float64(bench) / 60
		if preferred {
			score += preferredPositionScore
		}
		candidates = append(candidates, PositionCandidate{
			Name:         p.Name,
			Score:        score,
			Preferred:    preferred,
			BenchSeconds: bench,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates
}
