package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPlayerNotFound means the named player is not in the roster.
	ErrPlayerNotFound = errors.New("player not found in roster")
	// ErrPlayerNotOnField means the outgoing side of a substitution is
	// already on the bench.
	ErrPlayerNotOnField = errors.New("player is not on the field")
	// ErrPlayerAlreadyOnField means the incoming side is already playing.
	ErrPlayerAlreadyOnField = errors.New("player is already on the field")
	// ErrDuplicatePlayer means a roster entry with that name already exists.
	ErrDuplicatePlayer = errors.New("player already in roster")
)

// AddPlayer inserts a new roster entry. Names are the identity and must be
// unique.
func (gs *GameState) AddPlayer(p *Player) error {
	if _, ok := gs.Roster[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
	}
	gs.Roster[p.Name] = p
	return nil
}

// RemovePlayer drops a roster entry, closing any running stint first so the
// accounting stays consistent up to the removal.
func (gs *GameState) RemovePlayer(name string, now time.Time) error {
	p, ok := gs.Roster[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	p.EndStint(now)
	delete(gs.Roster, name)
	return nil
}

// Assign puts a player on the field at the given position, starting a stint
// if one is not already running. Assigning an on-field player just moves
// them to the new position.
func (gs *GameState) Assign(name, position string, now time.Time) error {
	p, ok := gs.Roster[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	p.StartStint(now)
	p.Position = position
	return nil
}

// Substitute replaces outName with inName at the same position. The close
// happens before the open and both halves share the same timestamp, so no
// second of play is lost or counted twice across the swap.
func (gs *GameState) Substitute(outName, inName string, now time.Time) error {
	out, ok := gs.Roster[outName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, outName)
	}
	in, ok := gs.Roster[inName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, inName)
	}
	if !out.OnField {
		return fmt.Errorf("%w: %s", ErrPlayerNotOnField, outName)
	}
	if in.OnField {
		return fmt.Errorf("%w: %s", ErrPlayerAlreadyOnField, inName)
	}

	position := out.Position
	out.EndStint(now)
	in.Position = position
	in.StartStint(now)
	return nil
}

// SwapPositions exchanges the positions of two on-field players. Both sides
// are reassigned; neither stint is closed or reopened.
func (gs *GameState) SwapPositions(a, b string) error {
	pa, ok := gs.Roster[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, a)
	}
	pb, ok := gs.Roster[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, b)
	}
	if !pa.OnField {
		return fmt.Errorf("%w: %s", ErrPlayerNotOnField, a)
	}
	if !pb.OnField {
		return fmt.Errorf("%w: %s", ErrPlayerNotOnField, b)
	}
	pa.Position, pb.Position = pb.Position, pa.Position
	return nil
}

// BenchAll closes every running stint, e.g. at full time.
func (gs *GameState) BenchAll(now time.Time) {
	for _, p := range gs.Roster {
		p.EndStint(now)
	}
}
