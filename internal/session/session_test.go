package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarlind/sideline/internal/game"
	"github.com/oskarlind/sideline/internal/metrics"
	"github.com/oskarlind/sideline/internal/session"
)

var kickoff = time.Date(2025, 5, 17, 10, 0, 0, 0, time.UTC)

func setupSession(t *testing.T) (*session.Session, *clockwork.FakeClock, *metrics.Mock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(kickoff)
	metricsMock := metrics.NewMock()
	sess := session.New(clock, metricsMock)
	require.NoError(t, sess.Configure(60, 2))
	return sess, clock, metricsMock
}

func addPlayers(t *testing.T, sess *session.Session, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, sess.AddPlayer(&game.Player{Name: name}))
	}
}

func TestConfigureFailsAfterStart(t *testing.T) {
	sess, _, _ := setupSession(t)
	require.NoError(t, sess.Start())

	err := sess.Configure(90, 2)
	assert.ErrorIs(t, err, game.ErrGameAlreadyStarted)
}

func TestTimerActionsRecordMetrics(t *testing.T) {
	sess, _, metricsMock := setupSession(t)

	require.NoError(t, sess.Start())
	require.NoError(t, sess.Pause())
	require.NoError(t, sess.Resume())

	assert.Equal(t, 1, metricsMock.TimerActions("configure"))
	assert.Equal(t, 1, metricsMock.TimerActions("start"))
	assert.Equal(t, 1, metricsMock.TimerActions("pause"))
	assert.Equal(t, 1, metricsMock.TimerActions("resume"))
}

func TestUndoRedoRoundTrip(t *testing.T) {
	sess, clock, _ := setupSession(t)
	addPlayers(t, sess, "Alva", "Nils")
	require.NoError(t, sess.AssignPosition("Alva", "ST"))

	require.NoError(t, sess.Start())
	clock.Advance(600 * time.Second)
	require.NoError(t, sess.Substitute("Alva", "Nils"))

	view := sess.View()
	require.True(t, view.GameStarted)

	require.True(t, sess.Undo(), "undo the substitution")
	report := sess.Report()
	byName := map[string]bool{}
	for _, p := range report.Players {
		byName[p.Name] = p.OnField
	}
	assert.True(t, byName["Alva"], "Alva is back on the field after undo")
	assert.False(t, byName["Nils"])

	require.True(t, sess.Redo())
	report = sess.Report()
	for _, p := range report.Players {
		if p.Name == "Nils" {
			assert.True(t, p.OnField)
		}
	}

	assert.False(t, sess.Redo(), "nothing left to redo")
}

func TestUndoEmptyHistory(t *testing.T) {
	sess, _, _ := setupSession(t)
	assert.False(t, sess.Undo())
	assert.False(t, sess.Redo())
}

func TestFailedActionLeavesNoHistoryEntry(t *testing.T) {
	sess, _, _ := setupSession(t)
	addPlayers(t, sess, "Alva")

	err := sess.Substitute("Alva", "Missing")
	assert.ErrorIs(t, err, game.ErrPlayerNotFound)

	info := sess.History()
	assert.Empty(t, info.History)
	assert.False(t, info.CanUndo)
}

func TestHistoryDescriptions(t *testing.T) {
	sess, _, _ := setupSession(t)
	addPlayers(t, sess, "Alva")

	require.NoError(t, sess.Start())
	require.NoError(t, sess.AssignPosition("Alva", "GK"))

	info := sess.History()
	assert.Equal(t, []string{"Start Game", "Assign Alva to GK"}, info.History)
	assert.True(t, info.CanUndo)
	assert.False(t, info.CanRedo)
}

func TestStoppageRejectsNonPositive(t *testing.T) {
	sess, _, _ := setupSession(t)

	assert.ErrorIs(t, sess.AddStoppage(0, nil), game.ErrInvalidStoppage)
	assert.ErrorIs(t, sess.AddStoppage(-30, nil), game.ErrInvalidStoppage)
	assert.NoError(t, sess.AddStoppage(60, nil))
}

func TestReplaceRosterRejectsDuplicates(t *testing.T) {
	sess, _, _ := setupSession(t)

	err := sess.ReplaceRoster([]*game.Player{{Name: "Alva"}, {Name: "Alva"}})
	assert.ErrorIs(t, err, game.ErrDuplicatePlayer)

	require.NoError(t, sess.ReplaceRoster([]*game.Player{{Name: "Alva"}, {Name: "Nils"}}))
	assert.Equal(t, 2, sess.RosterSize())
}

func TestSnapshotKeepsPlayersOnField(t *testing.T) {
	sess, clock, _ := setupSession(t)
	addPlayers(t, sess, "Alva")
	require.NoError(t, sess.AssignPosition("Alva", "ST"))
	require.NoError(t, sess.Start())

	clock.Advance(300 * time.Second)
	snapshot := sess.Snapshot()

	saved := snapshot.Roster["Alva"]
	assert.Equal(t, 300, saved.TotalSeconds, "live time is captured into the snapshot")
	assert.True(t, saved.OnField, "saving never closes a stint")

	// The live session is untouched.
	live := sess.Report()
	require.Len(t, live.Players, 1)
	assert.Equal(t, 0, live.Players[0].TotalSeconds)
	assert.Equal(t, 300, live.Players[0].CumulativeSeconds)
}

func TestRestoreMigratesLegacySnapshot(t *testing.T) {
	sess, clock, metricsMock := setupSession(t)

	legacy := game.NewGameState()
	start := kickoff.Add(-900 * time.Second)
	legacy.GameStart = &start
	legacy.Paused = true
	legacy.PeriodAdjustments = nil
	legacy.ElapsedAdjustment = 30

	sess.Restore(legacy)

	view := sess.View()
	assert.True(t, view.GameStarted)
	// 900s backfilled into the current period plus the 30s legacy adjustment.
	assert.Equal(t, 930, view.ElapsedSeconds)
	assert.Equal(t, 1, metricsMock.Loads())

	info := sess.History()
	assert.Empty(t, info.History, "loading clears undo history")

	clock.Advance(time.Hour)
	assert.Equal(t, 930, sess.View().ElapsedSeconds, "a paused loaded game does not keep accruing")
}

func TestViewHalftime(t *testing.T) {
	sess, clock, _ := setupSession(t)
	sess.SetHalftimeBreak(600)
	addPlayers(t, sess, "Alva")
	require.NoError(t, sess.Start())

	view := sess.View()
	assert.Nil(t, view.HalftimeRemaining)
	assert.Equal(t, 1, view.PeriodNumber)

	clock.Advance(1800 * time.Second)
	assert.True(t, sess.View().SuggestHalftime)

	require.NoError(t, sess.StartHalftime())
	view = sess.View()
	assert.True(t, view.InBreak)
	require.NotNil(t, view.HalftimeRemaining)
	assert.Equal(t, 600, *view.HalftimeRemaining)

	require.NoError(t, sess.EndHalftime())
	view = sess.View()
	assert.False(t, view.InBreak)
	assert.Equal(t, 2, view.PeriodNumber)
	assert.False(t, view.Paused)
}

type recordingAutoSaver struct {
	saves []*game.GameState
	err   error
}

func (r *recordingAutoSaver) AutoSave(state *game.GameState) error {
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, state)
	return nil
}

func TestAutoSaveAfterMutations(t *testing.T) {
	sess, _, _ := setupSession(t)
	saver := &recordingAutoSaver{}
	sess.SetAutoSaver(saver)

	addPlayers(t, sess, "Alva")
	require.NoError(t, sess.Start())
	require.NoError(t, sess.Pause())

	assert.Len(t, saver.saves, 3)
}

func TestAutoSaveFailureIsSwallowed(t *testing.T) {
	sess, _, _ := setupSession(t)
	sess.SetAutoSaver(&recordingAutoSaver{err: errors.New("disk full")})

	assert.NoError(t, sess.Start(), "autosave failures never surface to the coach")
}
