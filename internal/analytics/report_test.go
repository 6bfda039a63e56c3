package analytics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarlind/sideline/internal/analytics"
	"github.com/oskarlind/sideline/internal/game"
)

var kickoff = time.Date(2025, 5, 17, 10, 0, 0, 0, time.UTC)

func setupGame(t *testing.T, lengthMinutes, periods int) (*game.GameState, *game.TimerService, *clockwork.FakeClock) {
	t.Helper()

	state := game.NewGameState()
	clock := clockwork.NewFakeClockAt(kickoff)
	timer := game.NewTimerService(state, clock)
	require.NoError(t, timer.ConfigureGame(lengthMinutes, periods))
	return state, timer, clock
}

func TestClassifyFairness(t *testing.T) {
	assert.Equal(t, analytics.FairnessUnder, analytics.ClassifyFairness(-120))
	assert.Equal(t, analytics.FairnessOK, analytics.ClassifyFairness(-119))
	assert.Equal(t, analytics.FairnessOK, analytics.ClassifyFairness(0))
	assert.Equal(t, analytics.FairnessOK, analytics.ClassifyFairness(119))
	assert.Equal(t, analytics.FairnessOver, analytics.ClassifyFairness(120))
}

func TestReportRankingAndDeltas(t *testing.T) {
	state, timer, _ := setupGame(t, 10, 1)
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Alva", TotalSeconds: 480}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Nils", TotalSeconds: 120}))
	timer.AddStoppageTime(10, nil)
	timer.AddTimeAdjustment(20, nil, false)

	report := analytics.Report(state, timer)

	assert.Equal(t, 630, report.TargetSecondsTotal)
	assert.Equal(t, 315, report.TargetSecondsPerPlayer)
	require.Len(t, report.Players, 2)

	// The under-target player surfaces first.
	assert.Equal(t, "Nils", report.Players[0].Name)
	assert.Equal(t, -195, report.Players[0].DeltaSeconds)
	assert.Equal(t, analytics.FairnessUnder, report.Players[0].Fairness)

	assert.Equal(t, "Alva", report.Players[1].Name)
	assert.Equal(t, 165, report.Players[1].DeltaSeconds)
	assert.Equal(t, analytics.FairnessOver, report.Players[1].Fairness)

	assert.Equal(t, 1, report.FairnessCounts[analytics.FairnessUnder])
	assert.Equal(t, 0, report.FairnessCounts[analytics.FairnessOK])
	assert.Equal(t, 1, report.FairnessCounts[analytics.FairnessOver])
}

func TestReportSortTieBreaks(t *testing.T) {
	state, timer, _ := setupGame(t, 10, 1)
	// Equal share is 150 each; all three land in the ok band.
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Moa", TotalSeconds: 200}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Alva", TotalSeconds: 200}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Nils", TotalSeconds: 130}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Ebbe", TotalSeconds: 70}))

	report := analytics.Report(state, timer)

	names := make([]string, 0, len(report.Players))
	for _, p := range report.Players {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Ebbe", "Nils", "Alva", "Moa"}, names, "delta ascending, then name")
}

func TestReportIncludesLiveStints(t *testing.T) {
	state, timer, clock := setupGame(t, 60, 2)
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Alva"}))
	require.NoError(t, state.Assign("Alva", "ST", clock.Now()))
	timer.StartGame()

	clock.Advance(240 * time.Second)
	report := analytics.Report(state, timer)

	require.Len(t, report.Players, 1)
	row := report.Players[0]
	assert.Equal(t, 0, row.TotalSeconds, "live time is reported, never persisted")
	assert.Equal(t, 240, row.ActiveStintSeconds)
	assert.Equal(t, 240, row.CumulativeSeconds)
	assert.True(t, row.OnField)
	assert.Equal(t, "ST", row.Position)

	// The read did not mutate the player.
	assert.Equal(t, 0, state.Roster["Alva"].TotalSeconds)
	assert.True(t, state.Roster["Alva"].OnField)
}

func TestReportBenchSeconds(t *testing.T) {
	state, timer, clock := setupGame(t, 60, 2)
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Alva"}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Nils"}))
	require.NoError(t, state.Assign("Alva", "ST", clock.Now()))

	// Before kickoff nobody has bench time.
	report := analytics.Report(state, timer)
	for _, p := range report.Players {
		assert.Equal(t, 0, p.BenchSeconds)
	}

	timer.StartGame()
	clock.Advance(300 * time.Second)
	report = analytics.Report(state, timer)
	byName := map[string]analytics.PlayerTimeSummary{}
	for _, p := range report.Players {
		byName[p.Name] = p
	}
	assert.Equal(t, 0, byName["Alva"].BenchSeconds)
	assert.Equal(t, 300, byName["Nils"].BenchSeconds)
}

func TestReportEmptyRoster(t *testing.T) {
	state, timer, _ := setupGame(t, 60, 2)

	report := analytics.Report(state, timer)
	assert.Equal(t, 0, report.RosterSize)
	assert.Empty(t, report.Players)
	assert.Equal(t, 0, report.TargetSecondsPerPlayer)
	assert.Zero(t, report.AverageSeconds)
	assert.Zero(t, report.MedianSeconds)
}

func TestReportAggregates(t *testing.T) {
	state, timer, _ := setupGame(t, 60, 2)
	for name, secs := range map[string]int{"Alva": 100, "Nils": 200, "Moa": 400} {
		require.NoError(t, state.AddPlayer(&game.Player{Name: name, TotalSeconds: secs}))
	}

	report := analytics.Report(state, timer)
	assert.InDelta(t, 233.33, report.AverageSeconds, 0.01)
	assert.Equal(t, 200.0, report.MedianSeconds)
	assert.Equal(t, 100, report.MinSeconds)
	assert.Equal(t, 400, report.MaxSeconds)
}

func TestWriteCSV(t *testing.T) {
	state, timer, _ := setupGame(t, 10, 1)
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Alva", Number: "7", Preferred: "st,mf", TotalSeconds: 480}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Nils", TotalSeconds: 120}))

	report := analytics.Report(state, timer)
	doc, err := analytics.WriteCSV(report)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(doc), "\n")
	assert.Equal(t, "Sideline Timekeeper Report", strings.Split(lines[0], ",")[0])
	assert.Contains(t, doc, "Name,Number,Preferred Positions")
	assert.Contains(t, doc, `"ST, MF"`)

	// Report order carries into the rows: Nils before Alva.
	assert.Less(t, strings.Index(doc, "Nils"), strings.Index(doc, "Alva,7"))
}

func TestRecommendForPosition(t *testing.T) {
	state, timer, clock := setupGame(t, 60, 2)
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Alva", Preferred: "ST"}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Nils", Preferred: "GK"}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Moa"}))
	require.NoError(t, state.Assign("Moa", "CM", clock.Now()))

	timer.StartGame()
	clock.Advance(600 * time.Second)

	candidates := analytics.RecommendForPosition(state, timer, "ST")

	require.Len(t, candidates, 2, "on-field players are never recommended")
	assert.Equal(t, "Alva", candidates[0].Name, "preferred position outranks bench time alone")
	assert.True(t, candidates[0].Preferred)
	assert.Equal(t, 600, candidates[0].BenchSeconds)
	assert.Equal(t, "Nils", candidates[1].Name)
	assert.False(t, candidates[1].Preferred)
}

func TestRecommendBenchTimeBreaksTies(t *testing.T) {
	state, timer, clock := setupGame(t, 60, 2)
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Alva", TotalSeconds: 300}))
	require.NoError(t, state.AddPlayer(&game.Player{Name: "Nils"}))

	timer.StartGame()
	clock.Advance(600 * time.Second)

	candidates := analytics.RecommendForPosition(state, timer, "ST")
	require.Len(t, candidates, 2)
	assert.Equal(t, "Nils", candidates[0].Name, "the player with more bench time surfaces first")
}

func TestWriteCSVEmptyRoster(t *testing.T) {
	state, timer, _ := setupGame(t, 60, 2)

	_, err := analytics.WriteCSV(analytics.Report(state, timer))
	assert.ErrorIs(t, err, analytics.ErrEmptyRoster)
}
