package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/oskarlind/sideline/internal/analytics"
	"github.com/oskarlind/sideline/internal/game"
	"github.com/oskarlind/sideline/internal/metrics"
)

// AutoSaver persists a snapshot after a successful mutating action. It is
// optional and best-effort: autosave failures are logged, never surfaced.
type AutoSaver interface {
	AutoSave(state *game.GameState) error
}

// Session is the single active game: one roster, one clock, one writer.
// Every mutating call takes the write lock; report and state queries take
// the read lock. The engine itself has no background work, so this mutex is
// the entire concurrency story.
type Session struct {
	mu sync.RWMutex

	state   *game.GameState
	timer   *game.TimerService
	clock   clockwork.Clock
	manager *CommandManager
	metrics metrics.Metrics

	autoSaver AutoSaver
}

// New creates a session over a fresh game state.
func New(clock clockwork.Clock, metricsSvc metrics.Metrics) *Session {
	state := game.NewGameState()
	return &Session{
		state:   state,
		timer:   game.NewTimerService(state, clock),
		clock:   clock,
		manager: NewCommandManager(),
		metrics: metricsSvc,
	}
}

// SetAutoSaver attaches the snapshot sink used after mutating actions.
func (s *Session) SetAutoSaver(saver AutoSaver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSaver = saver
}

// SetHalftimeBreak overrides the break length, in seconds.
func (s *Session) SetHalftimeBreak(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.SetHalftimeBreak(seconds)
}

// Configure sets regulation length and period count. Fails once the game
// has started.
func (s *Session) Configure(lengthMinutes, periodCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.timer.ConfigureGame(lengthMinutes, periodCount); err != nil {
		return err
	}
	s.metrics.IncTimerAction("configure")
	s.autoSave()
	return nil
}

// Start kicks off (or resumes) the game clock.
func (s *Session) Start() error {
	return s.execute("Start Game", "start", func() error {
		s.timer.StartGame()
		return nil
	})
}

// Pause stops the game clock.
func (s *Session) Pause() error {
	return s.execute("Pause Game", "pause", func() error {
		s.timer.PauseGame()
		return nil
	})
}

// Resume restarts the game clock after a pause.
func (s *Session) Resume() error {
	return s.execute("Resume Game", "resume", func() error {
		s.timer.ResumeGame()
		return nil
	})
}

// StartHalftime opens the break.
func (s *Session) StartHalftime() error {
	return s.execute("Start Halftime", "halftime_start", func() error {
		s.timer.StartHalftime()
		return nil
	})
}

// EndHalftime closes the break and starts the next period.
func (s *Session) EndHalftime() error {
	return s.execute("End Halftime", "halftime_end", func() error {
		s.timer.EndHalftime()
		return nil
	})
}

// Reset clears the timer back to not-started. Player accrual survives; it
// is not recorded in undo history because the coach is abandoning the
// timeline, not editing it.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.ResetGame()
	s.manager.Clear()
	s.metrics.IncTimerAction("reset")
	s.autoSave()
}

// Adjust applies a signed per-period correction.
func (s *Session) Adjust(seconds int, periodIndex *int, applyToAll bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.AddTimeAdjustment(seconds, periodIndex, applyToAll)
	s.metrics.IncTimerAction("adjustment")
	s.autoSave()
}

// AddStoppage adds injury time. Non-positive input is rejected here, before
// the engine is touched.
func (s *Session) AddStoppage(seconds int, periodIndex *int) error {
	if seconds <= 0 {
		return game.ErrInvalidStoppage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.AddStoppageTime(seconds, periodIndex)
	s.metrics.IncTimerAction("stoppage")
	s.autoSave()
	return nil
}

// Substitute swaps outName off the field for inName at the same position.
func (s *Session) Substitute(outName, inName string) error {
	err := s.execute("Substitute "+outName+" for "+inName, "", func() error {
		return s.state.Substitute(outName, inName, s.timer.Now())
	})
	if err == nil {
		s.metrics.IncSubstitutions()
	}
	return err
}

// AssignPosition puts a player on the field at the given position.
func (s *Session) AssignPosition(name, position string) error {
	return s.execute("Assign "+name+" to "+position, "", func() error {
		return s.state.Assign(name, position, s.timer.Now())
	})
}

// SwapPositions exchanges the field positions of two on-field players.
func (s *Session) SwapPositions(a, b string) error {
	return s.execute("Swap "+a+" and "+b, "", func() error {
		return s.state.SwapPositions(a, b)
	})
}

// AddPlayer appends one roster entry.
func (s *Session) AddPlayer(p *game.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.AddPlayer(p); err != nil {
		return err
	}
	s.autoSave()
	return nil
}

// RemovePlayer drops a roster entry.
func (s *Session) RemovePlayer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.RemovePlayer(name, s.timer.Now()); err != nil {
		return err
	}
	s.autoSave()
	return nil
}

// ReplaceRoster swaps in a whole new roster and resets command history.
// The timer is untouched, matching the original roster update flow.
func (s *Session) ReplaceRoster(players []*game.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster := make(map[string]*game.Player, len(players))
	for _, p := range players {
		if _, ok := roster[p.Name]; ok {
			return game.ErrDuplicatePlayer
		}
		roster[p.Name] = p
	}
	s.state.Roster = roster
	s.manager.Clear()
	s.autoSave()
	return nil
}

// SetScheduledStart records the planned kickoff time.
func (s *Session) SetScheduledStart(ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.SetScheduledStart(ts)
	s.autoSave()
}

// RecommendForPosition ranks bench players for a field position.
func (s *Session) RecommendForPosition(position string) []analytics.PositionCandidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.RecommendForPosition(s.state, s.timer, position)
}

// RosterSize reports how many players are registered.
func (s *Session) RosterSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Roster)
}

// Players returns the roster sorted by name.
func (s *Session) Players() []*game.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := s.state.SortedNames()
	players := make([]*game.Player, 0, len(names))
	for _, name := range names {
		players = append(players, s.state.Roster[name].Clone())
	}
	return players
}

// Undo reverts the most recent undoable action.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.manager.Undo()
	if ok {
		s.autoSave()
	}
	return ok
}

// Redo re-applies the next undone action.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.manager.Redo()
	if ok {
		s.autoSave()
	}
	return ok
}

// HistoryInfo describes the undo/redo state for display.
type HistoryInfo struct {
	History []string `json:"history"`
	CanUndo bool     `json:"can_undo"`
	CanRedo bool     `json:"can_redo"`
}

// History returns the recorded command descriptions plus undo/redo flags.
func (s *Session) History() HistoryInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return HistoryInfo{
		History: s.manager.History(),
		CanUndo: s.manager.CanUndo(),
		CanRedo: s.manager.CanRedo(),
	}
}

// Report builds the fairness report under the read lock.
func (s *Session) Report() analytics.GameReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	started := s.clock.Now()
	report := analytics.Report(s.state, s.timer)
	s.metrics.ObserveReportDuration(s.clock.Since(started).Seconds())
	return report
}

// Snapshot returns a save-ready deep copy: live stint time is captured into
// totals without closing any stint, so a reload keeps players on the field.
func (s *Session) Snapshot() *game.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Restore replaces the session state with a loaded snapshot. Normalization
// and the legacy-format backfill run here, once, not in any query path.
func (s *Session) Restore(state *game.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game.NormalizeLoaded(state)
	state.MigrateLegacySnapshot(s.clock.Now())
	s.state.RestoreFrom(state)
	s.manager.Clear()
	s.metrics.IncLoads()
}

// StateView is the composite the state endpoint renders: timer status,
// per-period rows, and the fairness report.
type StateView struct {
	GameStarted        bool                 `json:"game_started"`
	Paused             bool                 `json:"paused"`
	InBreak            bool                 `json:"in_break"`
	ElapsedSeconds     int                  `json:"elapsed_seconds"`
	RemainingSeconds   int                  `json:"remaining_seconds"`
	TargetSeconds      int                  `json:"target_seconds"`
	PeriodNumber       int                  `json:"period_number"`
	PeriodCount        int                  `json:"period_count"`
	SuggestHalftime    bool                 `json:"suggest_halftime"`
	HalftimeRemaining  *int                 `json:"halftime_remaining_seconds,omitempty"`
	TotalStoppage      int                  `json:"total_stoppage_seconds"`
	TotalAdjustment    int                  `json:"total_adjustment_seconds"`
	Periods            []game.PeriodSummary `json:"periods"`
	Report             analytics.GameReport `json:"report"`
}

// View assembles the full state view under a single read lock, so the
// timer numbers and the report agree on one moment.
func (s *Session) View() StateView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.timer.Configuration()
	view := StateView{
		GameStarted:      s.state.Started(),
		Paused:           s.state.Paused,
		InBreak:          s.state.HalftimeStarted,
		ElapsedSeconds:   s.timer.GameElapsedSeconds(),
		RemainingSeconds: s.timer.RemainingSeconds(),
		TargetSeconds:    cfg.GameLengthSeconds + cfg.TotalStoppageSeconds,
		PeriodNumber:     s.state.CurrentPeriodIndex + 1,
		PeriodCount:      cfg.PeriodCount,
		SuggestHalftime:  s.timer.ShouldSuggestHalftime(),
		TotalStoppage:    cfg.TotalStoppageSeconds,
		TotalAdjustment:  cfg.TotalAdjustmentSeconds,
		Periods:          s.timer.PeriodSummaries(),
		Report:           analytics.Report(s.state, s.timer),
	}
	if remaining, ok := s.timer.HalftimeRemainingSeconds(); ok {
		view.HalftimeRemaining = &remaining
	}
	return view
}

// Now exposes the session clock.
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

// execute wraps a mutation in a snapshot command under the write lock.
// metricAction, when set, is counted as a timer action.
func (s *Session) execute(desc, metricAction string, apply func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmd := newCommand(s.state, desc, apply)
	if err := s.manager.Execute(cmd); err != nil {
		return err
	}
	if metricAction != "" {
		s.metrics.IncTimerAction(metricAction)
	}
	s.autoSave()
	return nil
}

// snapshotLocked assumes at least the read lock is held.
func (s *Session) snapshotLocked() *game.GameState {
	snapshot := s.state.Clone()
	snapshot.CaptureStints(s.clock.Now())
	return snapshot
}

// autoSave assumes the write lock is held.
func (s *Session) autoSave() {
	if s.autoSaver == nil {
		return
	}
	if err := s.autoSaver.AutoSave(s.snapshotLocked()); err != nil {
		log.Error("Auto-save failed", "error", err)
	}
}
