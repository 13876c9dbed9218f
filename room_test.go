package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom(t *testing.T, playerIDs ...string) *Room {
	t.Helper()
	require.NotEmpty(t, playerIDs)

	r := newRoom("TEST1", PlayerInfo{ID: playerIDs[0], Name: strings.ToUpper(playerIDs[0])}, 3)
	for _, id := range playerIDs[1:] {
		r.addPlayer(PlayerInfo{ID: id, Name: strings.ToUpper(id)})
	}
	return r
}

// startedRoom returns a room in CLUE phase with "a" hosting and giving
// the first clue, and the target pinned for deterministic scoring.
func startedRoom(t *testing.T, target int, playerIDs ...string) *Room {
	t.Helper()

	r := testRoom(t, playerIDs...)
	_, err := r.Start(playerIDs[0], 0, false)
	require.NoError(t, err)
	r.target = target
	return r
}

func TestNewRoomSeedsHost(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a")

	assert.Equal(t, PhaseLobby, r.phase)
	assert.Equal(t, "a", r.hostID)
	assert.Equal(t, "a", r.clueGiverID)
	require.Len(t, r.players, 1)
	assert.Equal(t, 0, r.playerScores["a"])
}

func TestAddPlayerIgnoresDuplicates(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")
	r.playerScores["b"] = 7
	r.addPlayer(PlayerInfo{ID: "b", Name: "B2"})

	assert.Len(t, r.players, 2)
	assert.Equal(t, 7, r.playerScores["b"], "rejoin must not reset an existing score entry")
}

func TestStartRequiresTwoPlayers(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a")

	changed, err := r.Start("a", 0, false)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.False(t, changed)
	assert.Equal(t, PhaseLobby, r.phase)
}

func TestStartIgnoresNonHost(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")

	changed, err := r.Start("b", 0, false)
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, PhaseLobby, r.phase)
}

func TestStartBeginsRoundOne(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b", "c")
	r.playerScores["b"] = 12
	r.score = 30

	changed, err := r.Start("a", 5, true)
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, PhaseClue, r.phase)
	assert.Equal(t, 1, r.currentRound)
	assert.Equal(t, 5, r.totalRounds)
	assert.Equal(t, "a", r.clueGiverID, "round 1 clue-giver is always the first player")
	require.NotNil(t, r.spectrum)
	assert.GreaterOrEqual(t, r.target, 0)
	assert.LessOrEqual(t, r.target, 100)
	assert.Empty(t, r.clue)
	assert.Empty(t, r.guesses)
	assert.Empty(t, r.locked)
	assert.Zero(t, r.playerScores["b"])
	assert.Zero(t, r.score)
}

func TestSubmitClueGuards(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b")

	assert.False(t, r.SubmitClue("b", "not my turn"))
	assert.Equal(t, PhaseClue, r.phase)

	assert.True(t, r.SubmitClue("a", "  lukewarm coffee  "))
	assert.Equal(t, "  lukewarm coffee  ", r.clue, "clues are truncated, never rewritten")
	assert.Equal(t, PhaseGuess, r.phase)

	// second clue lands in the wrong phase
	assert.False(t, r.SubmitClue("a", "another"))
}

func TestSubmitClueTruncates(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b")

	long := strings.Repeat("é", maxClueLength+25)
	require.True(t, r.SubmitClue("a", long))
	assert.Equal(t, maxClueLength, len([]rune(r.clue)))
}

func TestSubmitGuessClampsAndUpserts(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b")
	require.True(t, r.SubmitClue("a", "clue"))

	assert.True(t, r.SubmitGuess("b", -5))
	assert.Equal(t, 0, r.guesses["b"])

	assert.True(t, r.SubmitGuess("b", 150))
	assert.Equal(t, 100, r.guesses["b"])

	assert.True(t, r.SubmitGuess("b", 42))
	assert.Equal(t, 42, r.guesses["b"], "later guesses overwrite earlier ones")
}

func TestClueGiverCannotGuessOrLock(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b")
	require.True(t, r.SubmitClue("a", "clue"))

	assert.False(t, r.SubmitGuess("a", 50))
	assert.False(t, r.LockGuess("a"))
	assert.NotContains(t, r.guesses, "a")
}

func TestOutsiderIsIgnored(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b")
	require.True(t, r.SubmitClue("a", "clue"))

	assert.False(t, r.SubmitGuess("stranger", 50))
	assert.False(t, r.LockGuess("stranger"))
	assert.False(t, r.ForceReveal("stranger"))
}

func TestLockAutoRevealsWhenAllGuessersLocked(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b", "c")
	require.True(t, r.SubmitClue("a", "clue"))

	require.True(t, r.SubmitGuess("b", 45))
	require.True(t, r.SubmitGuess("c", 60))

	require.True(t, r.LockGuess("b"))
	assert.Equal(t, PhaseGuess, r.phase, "one lock outstanding")

	require.True(t, r.LockGuess("c"))
	assert.Equal(t, PhaseReveal, r.phase)

	require.NotNil(t, r.lastReveal)
	rev := r.lastReveal
	assert.Equal(t, 50, rev.Target)
	assert.Equal(t, 53, rev.FinalGuess)
	assert.Equal(t, 8, rev.TeamDelta)
	assert.Equal(t, 8, rev.TeamScore)
	assert.Len(t, rev.PerPlayer, 2)
	assert.NotContains(t, rev.PerPlayer, "a")

	assert.Equal(t, 8, r.score)
	assert.Equal(t, 4, r.playerScores["b"])
	assert.Equal(t, 4, r.playerScores["c"])
	assert.Equal(t, 4, r.playerScores["a"], "clue-giver earns the rounded mean")
	require.NotNil(t, r.finalGuess)
	assert.Equal(t, 53, *r.finalGuess)
}

func TestForceRevealIsHostOnly(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b", "c")
	require.True(t, r.SubmitClue("a", "clue"))
	require.True(t, r.SubmitGuess("b", 55))

	assert.False(t, r.ForceReveal("b"))
	assert.Equal(t, PhaseGuess, r.phase)

	assert.True(t, r.ForceReveal("a"))
	assert.Equal(t, PhaseReveal, r.phase)

	// b guessed without locking and still scored; c never guessed
	assert.Equal(t, 4, r.playerScores["b"])
	assert.Zero(t, r.playerScores["c"])
	require.NotNil(t, r.lastReveal)
	assert.Equal(t, defaultGuessValue, r.lastReveal.FinalGuess, "nobody locked, final guess defaults")
}

func TestNextRoundRotatesClueGiver(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b", "c")
	_, err := r.Start("a", 5, true)
	require.NoError(t, err)
	require.Equal(t, "a", r.clueGiverID)

	finishRound := func() {
		require.True(t, r.SubmitClue(r.clueGiverID, "clue"))
		require.True(t, r.ForceReveal("a"))
	}

	finishRound()
	require.True(t, r.NextRound("a"))
	assert.Equal(t, "b", r.clueGiverID)
	assert.Equal(t, 2, r.currentRound)

	finishRound()
	require.True(t, r.NextRound("a"))
	assert.Equal(t, "c", r.clueGiverID)

	finishRound()
	require.True(t, r.NextRound("a"))
	assert.Equal(t, "a", r.clueGiverID, "rotation wraps to the first player")
}

func TestNextRoundEndsGameAfterFinalRound(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")
	_, err := r.Start("a", 1, true)
	require.NoError(t, err)

	require.True(t, r.SubmitClue("a", "clue"))
	r.target = 40
	require.True(t, r.SubmitGuess("b", 44))
	require.True(t, r.LockGuess("b"))
	require.Equal(t, PhaseReveal, r.phase)

	assert.False(t, r.NextRound("b"), "host-only")
	require.True(t, r.NextRound("a"))

	assert.Equal(t, PhaseGameOver, r.phase)
	assert.Nil(t, r.spectrum)
	assert.Nil(t, r.lastReveal)
	assert.Nil(t, r.finalGuess)
	assert.Empty(t, r.guesses)
	assert.Equal(t, 4, r.score, "scores freeze at game over")
	assert.Equal(t, 4, r.playerScores["b"])
}

func TestReplayRestartsFromGameOver(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")
	_, err := r.Start("a", 1, true)
	require.NoError(t, err)
	require.True(t, r.SubmitClue("a", "clue"))
	require.True(t, r.ForceReveal("a"))
	require.True(t, r.NextRound("a"))
	require.Equal(t, PhaseGameOver, r.phase)
	r.playerScores["b"] = 9
	r.score = 9

	assert.False(t, r.Replay("b"), "host-only")
	require.True(t, r.Replay("a"))

	assert.Equal(t, PhaseClue, r.phase)
	assert.Equal(t, 1, r.currentRound)
	assert.Equal(t, "a", r.clueGiverID)
	assert.Zero(t, r.score)
	assert.Zero(t, r.playerScores["b"])
	require.NotNil(t, r.spectrum)
}

func TestReplayIgnoredOutsideGameOver(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b")
	assert.False(t, r.Replay("a"))
	assert.Equal(t, PhaseClue, r.phase)
}

func TestWrongPhaseActionsAreIgnored(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")

	assert.False(t, r.SubmitClue("a", "too early"))
	assert.False(t, r.SubmitGuess("b", 50))
	assert.False(t, r.LockGuess("b"))
	assert.False(t, r.ForceReveal("a"))
	assert.False(t, r.NextRound("a"))
	assert.Equal(t, PhaseLobby, r.phase)
}

func TestSetPromptPoolHostAndLobbyOnly(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")

	assert.False(t, r.SetPromptPool("b", "x|y"))
	assert.True(t, r.SetPromptPool("a", "x|y\nbad line"))
	require.Len(t, r.promptPool, 1)

	_, err := r.Start("a", 0, false)
	require.NoError(t, err)
	assert.False(t, r.SetPromptPool("a", "too|late"))
	assert.Len(t, r.promptPool, 1)
}

func TestStartUsesPromptPool(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")
	require.True(t, r.SetPromptPool("a", "Left|Right"))

	_, err := r.Start("a", 0, false)
	require.NoError(t, err)

	require.NotNil(t, r.spectrum)
	assert.Equal(t, Spectrum{Left: "Left", Right: "Right"}, *r.spectrum)
}

func TestSetTotalRounds(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b")

	assert.True(t, r.SetTotalRounds("a", 7, true))
	assert.Equal(t, 7, r.totalRounds)

	assert.False(t, r.SetTotalRounds("a", 0, false), "missing value keeps the previous setting")
	assert.Equal(t, 7, r.totalRounds)

	assert.True(t, r.SetTotalRounds("a", 999, true))
	assert.Equal(t, maxTotalRounds, r.totalRounds)

	assert.True(t, r.SetTotalRounds("a", -2, true))
	assert.Equal(t, 1, r.totalRounds)

	assert.False(t, r.SetTotalRounds("b", 5, true), "host-only")
}

func TestRemovePlayerReassignsHostAndClueGiver(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b", "c")
	require.Equal(t, "a", r.hostID)
	require.Equal(t, "a", r.clueGiverID)

	require.True(t, r.removePlayer("a"))

	assert.Equal(t, "b", r.hostID)
	assert.Equal(t, "b", r.clueGiverID)
	assert.Len(t, r.players, 2)
	assert.NotContains(t, r.playerScores, "a")
	assert.False(t, r.removePlayer("a"), "already gone")
}

func TestRemovePlayerDropsRoundData(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b", "c")
	require.True(t, r.SubmitClue("a", "clue"))
	require.True(t, r.SubmitGuess("b", 10))
	require.True(t, r.LockGuess("b"))

	require.True(t, r.removePlayer("b"))

	assert.NotContains(t, r.guesses, "b")
	assert.NotContains(t, r.locked, "b")
	assert.Equal(t, PhaseGuess, r.phase, "a disconnect never forces a reveal")
}

func TestRemovePlayerClearsNewClueGiverRoundData(t *testing.T) {
	t.Parallel()

	r := startedRoom(t, 50, "a", "b", "c")
	require.True(t, r.SubmitClue("a", "clue"))
	require.True(t, r.SubmitGuess("b", 40))
	require.True(t, r.LockGuess("b"))

	// the clue-giver leaves; b inherits the duty and stops being a guesser
	require.True(t, r.removePlayer("a"))
	require.Equal(t, "b", r.clueGiverID)

	assert.NotContains(t, r.guesses, "b")
	assert.NotContains(t, r.locked, "b")
	assert.Equal(t, PhaseGuess, r.phase)

	// c is now the sole guesser, so their lock ends the round without b
	require.True(t, r.SubmitGuess("c", 55))
	require.True(t, r.LockGuess("c"))
	require.Equal(t, PhaseReveal, r.phase)
	require.NotNil(t, r.lastReveal)
	assert.NotContains(t, r.lastReveal.PerPlayer, "b")
	assert.Equal(t, 55, r.lastReveal.FinalGuess)
}

func TestRotationAfterClueGiverVanished(t *testing.T) {
	t.Parallel()

	r := testRoom(t, "a", "b", "c")
	r.clueGiverID = "gone"
	r.rotateClueGiver()
	assert.Equal(t, "a", r.clueGiverID, "unknown clue-giver restarts rotation at the front")
}
