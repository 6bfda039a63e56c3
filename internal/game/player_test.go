package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarlind/sideline/internal/game"
)

func TestStintAccrual(t *testing.T) {
	p := &game.Player{Name: "Nils"}
	t0 := kickoff

	p.StartStint(t0)
	assert.True(t, p.OnField)
	require.NotNil(t, p.StintStart)

	// Starting again must not restart the running stint.
	p.StartStint(t0.Add(30 * time.Second))
	assert.Equal(t, t0, *p.StintStart)

	p.EndStint(t0.Add(125 * time.Second))
	assert.Equal(t, 125, p.TotalSeconds)
	assert.False(t, p.OnField)
	assert.Nil(t, p.StintStart)
	assert.Empty(t, p.Position)
}

func TestEndStintIdempotent(t *testing.T) {
	p := &game.Player{Name: "Nils", Position: "GK"}

	p.EndStint(kickoff)
	assert.Equal(t, 0, p.TotalSeconds)
	assert.False(t, p.OnField)
	assert.Empty(t, p.Position, "close always clears position, even off-field")
}

func TestStintTotalsNeverDecrease(t *testing.T) {
	p := &game.Player{Name: "Nils"}
	now := kickoff
	prev := 0

	for i := 0; i < 5; i++ {
		p.StartStint(now)
		now = now.Add(time.Duration(60*i) * time.Second)
		p.EndStint(now)
		assert.GreaterOrEqual(t, p.TotalSeconds, prev)
		prev = p.TotalSeconds
	}
	assert.Equal(t, 600, p.TotalSeconds)
}

func TestBackwardsClockAccruesZero(t *testing.T) {
	p := &game.Player{Name: "Nils"}
	p.StartStint(kickoff)
	p.EndStint(kickoff.Add(-time.Minute))
	assert.Equal(t, 0, p.TotalSeconds)
}

func TestCurrentStintDoesNotMutate(t *testing.T) {
	p := &game.Player{Name: "Nils", TotalSeconds: 100}

	assert.Equal(t, 0, p.CurrentStintSeconds(kickoff))

	p.StartStint(kickoff)
	now := kickoff.Add(45 * time.Second)
	assert.Equal(t, 45, p.CurrentStintSeconds(now))
	assert.Equal(t, 45, p.CurrentStintSeconds(now), "repeated reads observe the same live value")
	assert.Equal(t, 100, p.TotalSeconds, "live time is never persisted until the stint closes")
	assert.Equal(t, 145, p.CumulativeSeconds(now))
}

func TestPreferredList(t *testing.T) {
	p := &game.Player{Name: "Nils", Preferred: "st, mf ,GK"}
	assert.Equal(t, []string{"ST", "MF", "GK"}, p.PreferredList())

	p.Preferred = ""
	assert.Empty(t, p.PreferredList())
}
