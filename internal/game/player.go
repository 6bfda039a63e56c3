package game

import (
	"strings"
	"time"
)

// Player represents one roster member. The name is the unique identifier
// within a roster. TotalSeconds only ever contains time from closed stints;
// the running stint is always derived from StintStart so that saving or
// reporting never has to end a stint early.
type Player struct {
	Name          string     `json:"name" msgpack:"name"`
	Number        string     `json:"number,omitempty" msgpack:"number"`
	Preferred     string     `json:"preferred,omitempty" msgpack:"preferred"`
	TotalSeconds  int        `json:"total_seconds" msgpack:"total_seconds"`
	OnField       bool       `json:"on_field" msgpack:"on_field"`
	Position      string     `json:"position,omitempty" msgpack:"position"`
	StintStart    *time.Time `json:"stint_start_ts,omitempty" msgpack:"stint_start_ts"`
}

// StartStint puts the player on the field at now. Calling it for a player
// already on the field is a no-op; the original stint keeps running.
func (p *Player) StartStint(now time.Time) {
	if p.OnField {
		return
	}
	p.OnField = true
	t := now
	p.StintStart = &t
}

// EndStint closes the running stint, folding its duration into TotalSeconds.
// The close is idempotent: off-field players are simply cleared again. A
// clock that went backwards contributes zero, never a negative amount.
func (p *Player) EndStint(now time.Time) {
	if p.OnField && p.StintStart != nil {
		p.TotalSeconds += stintSeconds(*p.StintStart, now)
	}
	p.OnField = false
	p.Position = ""
	p.StintStart = nil
}

// CurrentStintSeconds reports the length of the running stint without
// mutating any state. Off-field players report zero.
func (p *Player) CurrentStintSeconds(now time.Time) int {
	if p.OnField && p.StintStart != nil {
		return stintSeconds(*p.StintStart, now)
	}
	return 0
}

// CumulativeSeconds is the closed total plus the live stint.
func (p *Player) CumulativeSeconds(now time.Time) int {
	return p.TotalSeconds + p.CurrentStintSeconds(now)
}

// PreferredList parses the comma-separated preferred positions, e.g.
// "st, mf" -> ["ST", "MF"].
func (p *Player) PreferredList() []string {
	var out []string
	for _, part := range strings.Split(p.Preferred, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Clone returns an independent copy, including the stint timestamp.
func (p *Player) Clone() *Player {
	cp := *p
	cp.StintStart = copyTime(p.StintStart)
	return &cp
}

func stintSeconds(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
