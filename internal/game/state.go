package game

import (
	"sort"
	"time"
)

const (
	// DefaultGameLengthMinutes is the regulation length used when nothing
	// has been configured.
	DefaultGameLengthMinutes = 60
	// DefaultPeriodCount is halves.
	DefaultPeriodCount = 2
	// DefaultHalftimeBreakSeconds is the fixed break length (10.5 minutes).
	DefaultHalftimeBreakSeconds = 630

	// MinPeriodSeconds is the smallest regulation share a period may get.
	MinPeriodSeconds = 60
)

// GameState is the authoritative record for one game: the roster plus every
// timing field the clock needs. It is a plain mutable struct; all locking
// lives in the session that owns it.
type GameState struct {
	Roster map[string]*Player `json:"players" msgpack:"players"`

	ScheduledStart *time.Time `json:"scheduled_start_ts,omitempty" msgpack:"scheduled_start_ts"`
	GameStart      *time.Time `json:"game_start_ts,omitempty" msgpack:"game_start_ts"`
	Paused         bool       `json:"paused" msgpack:"paused"`

	HalftimeStarted bool       `json:"halftime_started" msgpack:"halftime_started"`
	HalftimeEnd     *time.Time `json:"halftime_end_ts,omitempty" msgpack:"halftime_end_ts"`

	// ElapsedAdjustment is the legacy aggregate of PeriodAdjustments, kept in
	// sync for older clients that still display it.
	ElapsedAdjustment int `json:"elapsed_adjustment" msgpack:"elapsed_adjustment"`

	GameLengthSeconds  int   `json:"game_length_seconds" msgpack:"game_length_seconds"`
	PeriodCount        int   `json:"period_count" msgpack:"period_count"`
	PeriodElapsed      []int `json:"period_elapsed" msgpack:"period_elapsed"`
	PeriodAdjustments  []int `json:"period_adjustments" msgpack:"period_adjustments"`
	PeriodStoppage     []int `json:"period_stoppage" msgpack:"period_stoppage"`
	CurrentPeriodIndex int   `json:"current_period_index" msgpack:"current_period_index"`

	PeriodStart *time.Time `json:"period_start_ts,omitempty" msgpack:"period_start_ts"`
}

// NewGameState returns a fresh, not-started game with default regulation
// settings and an empty roster.
func NewGameState() *GameState {
	gs := &GameState{
		Roster:            make(map[string]*Player),
		Paused:            true,
		GameLengthSeconds: DefaultGameLengthMinutes * 60,
		PeriodCount:       DefaultPeriodCount,
	}
	gs.Normalize()
	return gs
}

// Normalize enforces the structural invariants: the three per-period slices
// always have exactly PeriodCount elements, the period index stays in range
// and the regulation length never drops below one minute. It is the single
// repair routine, called by ConfigureGame and by the deserialization path.
func (gs *GameState) Normalize() {
	if gs.Roster == nil {
		gs.Roster = make(map[string]*Player)
	}
	if gs.PeriodCount < 1 {
		gs.PeriodCount = 1
	}
	gs.PeriodElapsed = resizeInts(gs.PeriodElapsed, gs.PeriodCount)
	gs.PeriodAdjustments = resizeInts(gs.PeriodAdjustments, gs.PeriodCount)
	gs.PeriodStoppage = resizeInts(gs.PeriodStoppage, gs.PeriodCount)

	if gs.CurrentPeriodIndex >= gs.PeriodCount {
		gs.CurrentPeriodIndex = gs.PeriodCount - 1
	}
	if gs.CurrentPeriodIndex < 0 {
		gs.CurrentPeriodIndex = 0
	}
	if gs.GameLengthSeconds < MinPeriodSeconds {
		gs.GameLengthSeconds = MinPeriodSeconds
	}
	gs.ElapsedAdjustment = sumInts(gs.PeriodAdjustments)
}

// MigrateLegacySnapshot backfills per-period data for saves produced before
// period tracking existed. If the game had started but every period reads
// zero, the whole wall-clock span since kickoff is attributed to the current
// period. Runs once on load, never inside the elapsed query.
func (gs *GameState) MigrateLegacySnapshot(now time.Time) {
	if gs.GameStart == nil {
		return
	}
	if sumInts(gs.PeriodElapsed) != 0 || gs.PeriodStart != nil {
		return
	}
	elapsed := int(now.Sub(*gs.GameStart) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	gs.PeriodElapsed[gs.CurrentPeriodIndex] = elapsed
}

// ApplyLegacyAdjustment folds an aggregate-only adjustment from an old save
// into the first period when no per-period values were stored.
func (gs *GameState) ApplyLegacyAdjustment(aggregate int) {
	if aggregate == 0 || sumInts(gs.PeriodAdjustments) != 0 {
		return
	}
	gs.PeriodAdjustments[0] = aggregate
	gs.ElapsedAdjustment = aggregate
}

// NormalizeLoaded repairs a freshly decoded snapshot. The legacy aggregate
// adjustment must be read before Normalize recomputes it from the (possibly
// absent) per-period values.
func NormalizeLoaded(gs *GameState) {
	legacy := gs.ElapsedAdjustment
	gs.Normalize()
	gs.ApplyLegacyAdjustment(legacy)
}

// CaptureStints folds the live stint of every on-field player into
// TotalSeconds without closing the stint, restarting the stint clock at now.
// This is the save-time capture: a reload keeps players on the field and
// does not double count the captured span.
func (gs *GameState) CaptureStints(now time.Time) {
	for _, p := range gs.Roster {
		if p.OnField && p.StintStart != nil {
			p.TotalSeconds += p.CurrentStintSeconds(now)
			t := now
			p.StintStart = &t
		}
	}
}

// Clone returns a deep copy, used for save snapshots and undo records.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Roster = make(map[string]*Player, len(gs.Roster))
	for name, p := range gs.Roster {
		cp.Roster[name] = p.Clone()
	}
	cp.ScheduledStart = copyTime(gs.ScheduledStart)
	cp.GameStart = copyTime(gs.GameStart)
	cp.HalftimeEnd = copyTime(gs.HalftimeEnd)
	cp.PeriodStart = copyTime(gs.PeriodStart)
	cp.PeriodElapsed = append([]int(nil), gs.PeriodElapsed...)
	cp.PeriodAdjustments = append([]int(nil), gs.PeriodAdjustments...)
	cp.PeriodStoppage = append([]int(nil), gs.PeriodStoppage...)
	return &cp
}

// RestoreFrom overwrites this state with a deep copy of other, in place.
// Holders of the *GameState pointer (the timer, the session) keep working
// against the restored state. Used by undo and by load.
func (gs *GameState) RestoreFrom(other *GameState) {
	restored := other.Clone()
	*gs = *restored
}

// Started reports whether kickoff has happened.
func (gs *GameState) Started() bool {
	return gs.GameStart != nil
}

// Running reports whether the clock is currently accruing time.
func (gs *GameState) Running() bool {
	return gs.PeriodStart != nil
}

// SortedNames returns roster names in lexical order, for stable listings.
func (gs *GameState) SortedNames() []string {
	names := make([]string, 0, len(gs.Roster))
	for name := range gs.Roster {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resizeInts(values []int, n int) []int {
	if len(values) < n {
		return append(values, make([]int, n-len(values))...)
	}
	return values[:n]
}

func sumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
