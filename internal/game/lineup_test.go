package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarlind/sideline/internal/game"
)

func setupRoster(t *testing.T, names ...string) *game.GameState {
	t.Helper()

	state := game.NewGameState()
	for _, name := range names {
		require.NoError(t, state.AddPlayer(&game.Player{Name: name}))
	}
	return state
}

func TestAddPlayerRejectsDuplicates(t *testing.T) {
	state := setupRoster(t, "Alva")
	err := state.AddPlayer(&game.Player{Name: "Alva"})
	assert.ErrorIs(t, err, game.ErrDuplicatePlayer)
}

func TestRemovePlayerClosesStint(t *testing.T) {
	state := setupRoster(t, "Alva")
	require.NoError(t, state.Assign("Alva", "ST", kickoff))

	require.NoError(t, state.RemovePlayer("Alva", kickoff.Add(90*time.Second)))
	assert.NotContains(t, state.Roster, "Alva")

	err := state.RemovePlayer("Alva", kickoff)
	assert.ErrorIs(t, err, game.ErrPlayerNotFound)
}

func TestSubstituteCarriesPosition(t *testing.T) {
	state := setupRoster(t, "Alva", "Nils")
	require.NoError(t, state.Assign("Alva", "ST", kickoff))

	subTime := kickoff.Add(600 * time.Second)
	require.NoError(t, state.Substitute("Alva", "Nils", subTime))

	alva, nils := state.Roster["Alva"], state.Roster["Nils"]
	assert.False(t, alva.OnField)
	assert.Equal(t, 600, alva.TotalSeconds)
	assert.True(t, nils.OnField)
	assert.Equal(t, "ST", nils.Position)
	require.NotNil(t, nils.StintStart)
	assert.Equal(t, subTime, *nils.StintStart, "both halves of the swap share one timestamp")
}

func TestSubstituteValidation(t *testing.T) {
	state := setupRoster(t, "Alva", "Nils")
	require.NoError(t, state.Assign("Alva", "ST", kickoff))
	require.NoError(t, state.Assign("Nils", "GK", kickoff))

	assert.ErrorIs(t, state.Substitute("Missing", "Nils", kickoff), game.ErrPlayerNotFound)
	assert.ErrorIs(t, state.Substitute("Alva", "Missing", kickoff), game.ErrPlayerNotFound)
	assert.ErrorIs(t, state.Substitute("Alva", "Nils", kickoff), game.ErrPlayerAlreadyOnField)

	state.Roster["Alva"].EndStint(kickoff)
	assert.ErrorIs(t, state.Substitute("Alva", "Nils", kickoff), game.ErrPlayerNotOnField)
}

func TestSwapPositionsIsSymmetric(t *testing.T) {
	state := setupRoster(t, "Alva", "Nils")
	require.NoError(t, state.Assign("Alva", "ST", kickoff))
	require.NoError(t, state.Assign("Nils", "GK", kickoff))

	require.NoError(t, state.SwapPositions("Alva", "Nils"))
	assert.Equal(t, "GK", state.Roster["Alva"].Position)
	assert.Equal(t, "ST", state.Roster["Nils"].Position)

	// Neither stint was reopened.
	assert.Equal(t, kickoff, *state.Roster["Alva"].StintStart)
	assert.Equal(t, kickoff, *state.Roster["Nils"].StintStart)
}

func TestSwapRequiresBothOnField(t *testing.T) {
	state := setupRoster(t, "Alva", "Nils")
	require.NoError(t, state.Assign("Alva", "ST", kickoff))

	assert.ErrorIs(t, state.SwapPositions("Alva", "Nils"), game.ErrPlayerNotOnField)
	assert.ErrorIs(t, state.SwapPositions("Alva", "Missing"), game.ErrPlayerNotFound)
}

func TestBenchAll(t *testing.T) {
	state := setupRoster(t, "Alva", "Nils", "Moa")
	require.NoError(t, state.Assign("Alva", "ST", kickoff))
	require.NoError(t, state.Assign("Nils", "GK", kickoff))

	state.BenchAll(kickoff.Add(120 * time.Second))
	for _, p := range state.Roster {
		assert.False(t, p.OnField)
	}
	assert.Equal(t, 120, state.Roster["Alva"].TotalSeconds)
	assert.Equal(t, 0, state.Roster["Moa"].TotalSeconds)
}
