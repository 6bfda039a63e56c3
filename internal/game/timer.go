package game

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrGameAlreadyStarted is returned when configuration is attempted
	// after kickoff. The game must be reset first.
	ErrGameAlreadyStarted = errors.New("game already started, reset before reconfiguring")
	// ErrPeriodTooShort is returned when the regulation length cannot give
	// every period at least one minute.
	ErrPeriodTooShort = errors.New("game length must allow at least one minute per period")
	// ErrInvalidStoppage is returned by callers validating stoppage input.
	ErrInvalidStoppage = errors.New("stoppage time must be positive")
)

// TimerService is the state machine over GameState's timing fields. Every
// coach action is a synchronous mutation; every query is pure arithmetic
// over the state plus a single clock read. Configuration errors are the only
// failures; every other action is an idempotent no-op when it does not
// apply, because a coach under pressure will double-tap controls.
type TimerService struct {
	state        *GameState
	clock        clockwork.Clock
	breakSeconds int
}

// NewTimerService wires a timer over the given state. The clock is injected
// so tests can drive time explicitly.
func NewTimerService(state *GameState, clock clockwork.Clock) *TimerService {
	return &TimerService{
		state:        state,
		clock:        clock,
		breakSeconds: DefaultHalftimeBreakSeconds,
	}
}

// SetHalftimeBreak overrides the fixed break length.
func (t *TimerService) SetHalftimeBreak(seconds int) {
	if seconds > 0 {
		t.breakSeconds = seconds
	}
}

// ConfigureGame sets regulation length and period count for a game that has
// not kicked off yet. All per-period accounting is reinitialized. The state
// is left untouched on error.
func (t *TimerService) ConfigureGame(lengthMinutes, periodCount int) error {
	if t.state.Started() {
		return ErrGameAlreadyStarted
	}
	if periodCount < 1 {
		periodCount = 1
	}
	if lengthMinutes*60 < periodCount*MinPeriodSeconds {
		return ErrPeriodTooShort
	}

	gs := t.state
	gs.GameLengthSeconds = lengthMinutes * 60
	gs.PeriodCount = periodCount
	gs.PeriodElapsed = make([]int, periodCount)
	gs.PeriodAdjustments = make([]int, periodCount)
	gs.PeriodStoppage = make([]int, periodCount)
	gs.CurrentPeriodIndex = 0
	gs.PeriodStart = nil
	gs.ElapsedAdjustment = 0
	gs.Normalize()
	return nil
}

// StartGame is the idempotent entry point: first call records kickoff,
// later calls just make sure the clock is running.
func (t *TimerService) StartGame() {
	now := t.clock.Now()
	gs := t.state
	if gs.GameStart == nil {
		kick := now
		gs.GameStart = &kick
		gs.CurrentPeriodIndex = 0
		for i := range gs.PeriodElapsed {
			gs.PeriodElapsed[i] = 0
		}
	}
	if gs.PeriodStart == nil {
		start := now
		gs.PeriodStart = &start
	}
	gs.Paused = false
}

// PauseGame closes the running span into the current period and stops the
// clock. Pausing an already paused game changes nothing.
func (t *TimerService) PauseGame() {
	t.closeRunningPeriod(t.clock.Now())
	t.state.Paused = true
}

// ResumeGame restarts the clock after a pause. If the game never started it
// behaves exactly like StartGame.
func (t *TimerService) ResumeGame() {
	if !t.state.Started() {
		t.StartGame()
		return
	}
	gs := t.state
	gs.Paused = false
	if gs.PeriodStart == nil {
		start := t.clock.Now()
		gs.PeriodStart = &start
	}
}

// StartHalftime closes the running period and opens the break. A second
// call while already in the break is a no-op.
func (t *TimerService) StartHalftime() {
	gs := t.state
	if gs.HalftimeStarted {
		return
	}
	now := t.clock.Now()
	t.closeRunningPeriod(now)
	gs.HalftimeStarted = true
	end := now.Add(time.Duration(t.breakSeconds) * time.Second)
	gs.HalftimeEnd = &end
	gs.Paused = true
}

// EndHalftime leaves the break and starts the next period. The period index
// never advances past the last period.
func (t *TimerService) EndHalftime() {
	gs := t.state
	if !gs.HalftimeStarted {
		return
	}
	now := t.clock.Now()
	gs.HalftimeStarted = false
	gs.HalftimeEnd = nil
	if gs.CurrentPeriodIndex < gs.PeriodCount-1 {
		gs.CurrentPeriodIndex++
	}
	gs.Paused = false
	start := now
	gs.PeriodStart = &start
	if gs.GameStart == nil {
		// Backstop for saves that lost kickoff.
		kick := now
		gs.GameStart = &kick
	}
}

// AddTimeAdjustment applies a signed manual correction. With applyToAll the
// correction lands on every period, otherwise on the given period (current
// period when periodIndex is nil). Out-of-range indices are clamped.
func (t *TimerService) AddTimeAdjustment(seconds int, periodIndex *int, applyToAll bool) {
	if seconds == 0 {
		return
	}
	gs := t.state
	if applyToAll {
		for i := range gs.PeriodAdjustments {
			gs.PeriodAdjustments[i] += seconds
		}
	} else {
		idx := t.resolvePeriodIndex(periodIndex)
		gs.PeriodAdjustments[idx] += seconds
	}
	gs.ElapsedAdjustment = sumInts(gs.PeriodAdjustments)
}

// AddStoppageTime adds injury time to a period. Callers reject non-positive
// input up front; the stored value is still floored at zero so a negative
// correction applied elsewhere can never drive it below zero.
func (t *TimerService) AddStoppageTime(seconds int, periodIndex *int) {
	gs := t.state
	idx := t.resolvePeriodIndex(periodIndex)
	gs.PeriodStoppage[idx] += seconds
	if gs.PeriodStoppage[idx] < 0 {
		gs.PeriodStoppage[idx] = 0
	}
}

// SetScheduledStart records the planned kickoff time shown pre-game.
func (t *TimerService) SetScheduledStart(ts time.Time) {
	t.state.ScheduledStart = &ts
}

// ResetGame clears every timing field back to not-started. Player accrual
// is untouched: this resets the timer, not the roster.
func (t *TimerService) ResetGame() {
	gs := t.state
	gs.GameStart = nil
	gs.ScheduledStart = nil
	gs.PeriodStart = nil
	gs.Paused = true
	gs.HalftimeStarted = false
	gs.HalftimeEnd = nil
	gs.CurrentPeriodIndex = 0
	gs.ElapsedAdjustment = 0
	for i := range gs.PeriodElapsed {
		gs.PeriodElapsed[i] = 0
		gs.PeriodAdjustments[i] = 0
		gs.PeriodStoppage[i] = 0
	}
}

// PeriodLengths splits regulation evenly across the periods, handing the
// remainder out one second at a time to the earliest periods: 601s over two
// periods is [301, 300].
func (t *TimerService) PeriodLengths() []int {
	gs := t.state
	lengths := make([]int, gs.PeriodCount)
	base := gs.GameLengthSeconds / gs.PeriodCount
	rem := gs.GameLengthSeconds % gs.PeriodCount
	for i := range lengths {
		lengths[i] = base
		if i < rem {
			lengths[i]++
		}
	}
	return lengths
}

// GameElapsedSeconds is the closed per-period time plus the live running
// span plus all adjustments and stoppage, never negative.
func (t *TimerService) GameElapsedSeconds() int {
	gs := t.state
	elapsed := sumInts(gs.PeriodElapsed) + t.runningSeconds(t.clock.Now())
	elapsed += sumInts(gs.PeriodAdjustments)
	elapsed += sumInts(gs.PeriodStoppage)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// RemainingSeconds counts down from regulation plus stoppage. The clock may
// run past zero; remaining just bottoms out there.
func (t *TimerService) RemainingSeconds() int {
	target := t.state.GameLengthSeconds + sumInts(t.state.PeriodStoppage)
	remaining := target - t.GameElapsedSeconds()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ShouldSuggestHalftime reports whether the current period has run its full
// target and a break is due. Never true during a break or in the last
// period.
func (t *TimerService) ShouldSuggestHalftime() bool {
	gs := t.state
	if gs.HalftimeStarted {
		return false
	}
	if gs.CurrentPeriodIndex >= gs.PeriodCount-1 {
		return false
	}
	idx := gs.CurrentPeriodIndex
	elapsed := gs.PeriodElapsed[idx] + t.runningSeconds(t.clock.Now())
	target := t.PeriodLengths()[idx] + gs.PeriodAdjustments[idx] + gs.PeriodStoppage[idx]
	return elapsed >= target
}

// HalftimeRemainingSeconds returns the seconds left in the break. The bool
// is false when no break is in progress.
func (t *TimerService) HalftimeRemainingSeconds() (int, bool) {
	gs := t.state
	if !gs.HalftimeStarted || gs.HalftimeEnd == nil {
		return 0, false
	}
	remaining := int(gs.HalftimeEnd.Sub(t.clock.Now()) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// Configuration is the read-only snapshot the report and the state endpoint
// consume.
type Configuration struct {
	GameLengthSeconds      int   `json:"game_length_seconds"`
	PeriodCount            int   `json:"period_count"`
	PeriodLengths          []int `json:"period_lengths"`
	TotalStoppageSeconds   int   `json:"total_stoppage_seconds"`
	TotalAdjustmentSeconds int   `json:"total_adjustment_seconds"`
}

// Configuration returns the current timer configuration totals.
func (t *TimerService) Configuration() Configuration {
	gs := t.state
	return Configuration{
		GameLengthSeconds:      gs.GameLengthSeconds,
		PeriodCount:            gs.PeriodCount,
		PeriodLengths:          t.PeriodLengths(),
		TotalStoppageSeconds:   sumInts(gs.PeriodStoppage),
		TotalAdjustmentSeconds: sumInts(gs.PeriodAdjustments),
	}
}

// PeriodSummary describes one period for display.
type PeriodSummary struct {
	Index          int  `json:"index"`
	LengthSeconds  int  `json:"length_seconds"`
	ElapsedSeconds int  `json:"elapsed_seconds"`
	Adjustment     int  `json:"adjustment_seconds"`
	Stoppage       int  `json:"stoppage_seconds"`
	TargetSeconds  int  `json:"target_seconds"`
	Active         bool `json:"active"`
}

// PeriodSummaries returns one row per period; the active period includes
// the live running span.
func (t *TimerService) PeriodSummaries() []PeriodSummary {
	gs := t.state
	lengths := t.PeriodLengths()
	now := t.clock.Now()
	summaries := make([]PeriodSummary, gs.PeriodCount)
	for i := 0; i < gs.PeriodCount; i++ {
		elapsed := gs.PeriodElapsed[i]
		if i == gs.CurrentPeriodIndex {
			elapsed += t.runningSeconds(now)
		}
		summaries[i] = PeriodSummary{
			Index:          i,
			LengthSeconds:  lengths[i],
			ElapsedSeconds: elapsed,
			Adjustment:     gs.PeriodAdjustments[i],
			Stoppage:       gs.PeriodStoppage[i],
			TargetSeconds:  lengths[i] + gs.PeriodAdjustments[i] + gs.PeriodStoppage[i],
			Active:         i == gs.CurrentPeriodIndex,
		}
	}
	return summaries
}

// Now exposes the injected clock's current time for callers that must share
// a single timestamp across an operation (substitutions, saves).
func (t *TimerService) Now() time.Time {
	return t.clock.Now()
}

func (t *TimerService) closeRunningPeriod(now time.Time) {
	gs := t.state
	if gs.PeriodStart == nil {
		return
	}
	gs.PeriodElapsed[gs.CurrentPeriodIndex] += stintSeconds(*gs.PeriodStart, now)
	gs.PeriodStart = nil
}

func (t *TimerService) runningSeconds(now time.Time) int {
	if t.state.PeriodStart == nil {
		return 0
	}
	return stintSeconds(*t.state.PeriodStart, now)
}

func (t *TimerService) resolvePeriodIndex(periodIndex *int) int {
	gs := t.state
	idx := gs.CurrentPeriodIndex
	if periodIndex != nil {
		idx = *periodIndex
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= gs.PeriodCount {
		idx = gs.PeriodCount - 1
	}
	return idx
}
