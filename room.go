package main

import (
	"math/rand"
)

// Phase is the room's position in the round lifecycle.
type Phase string

const (
	PhaseLobby    Phase = "LOBBY"
	PhaseClue     Phase = "CLUE"
	PhaseGuess    Phase = "GUESS"
	PhaseReveal   Phase = "REVEAL"
	PhaseGameOver Phase = "GAMEOVER"
)

const (
	maxClueLength     = 140
	maxTotalRounds    = 50
	defaultGuessValue = 50
	minPlayersToStart = 2
)

// PlayerInfo identifies one connected player. Slice order is join order
// and drives clue-giver rotation.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Room holds one game session. Rooms are owned by the hub goroutine and
// mutated only through the transition methods below; each method enforces
// its own actor and phase guards and returns whether state changed, so the
// caller knows when to broadcast. Guard violations are silently ignored.
type Room struct {
	code         string
	hostID       string
	players      []PlayerInfo
	playerScores map[string]int
	phase        Phase
	clueGiverID  string
	spectrum     *Spectrum
	target       int
	clue         string
	guesses      map[string]int
	locked       map[string]struct{}
	finalGuess   *int
	lastReveal   *Reveal
	score        int
	promptPool   []Spectrum
	totalRounds  int
	currentRound int
}

func newRoom(code string, host PlayerInfo, totalRounds int) *Room {
	r := &Room{
		code:         code,
		hostID:       host.ID,
		clueGiverID:  host.ID,
		phase:        PhaseLobby,
		playerScores: make(map[string]int),
		guesses:      make(map[string]int),
		locked:       make(map[string]struct{}),
		totalRounds:  clampRounds(totalRounds),
	}
	r.players = append(r.players, host)
	r.playerScores[host.ID] = 0
	return r
}

func clampRounds(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxTotalRounds {
		return maxTotalRounds
	}
	return n
}

func clampGuess(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func (r *Room) isHost(id string) bool {
	return id == r.hostID
}

func (r *Room) isPlayer(id string) bool {
	for _, p := range r.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// isGuesser reports whether id belongs to a player other than the
// current clue-giver.
func (r *Room) isGuesser(id string) bool {
	return r.isPlayer(id) && id != r.clueGiverID
}

// addPlayer appends a player unless already present, seeding their score.
func (r *Room) addPlayer(p PlayerInfo) {
	if r.isPlayer(p.ID) {
		return
	}
	r.players = append(r.players, p)
	if _, ok := r.playerScores[p.ID]; !ok {
		r.playerScores[p.ID] = 0
	}
}

// removePlayer drops a player and their round data. Host and clue-giver
// duties both pass to the first remaining player; a new clue-giver's
// pending guess and lock are discarded, since the clue-giver is never a
// guesser. Returns whether the room changed; the caller deletes the room
// once empty.
func (r *Room) removePlayer(id string) bool {
	idx := -1
	for i, p := range r.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	delete(r.playerScores, id)
	delete(r.guesses, id)
	delete(r.locked, id)

	if len(r.players) > 0 {
		if r.hostID == id {
			r.hostID = r.players[0].ID
		}
		if r.clueGiverID == id {
			r.clueGiverID = r.players[0].ID
			delete(r.guesses, r.clueGiverID)
			delete(r.locked, r.clueGiverID)
		}
	}

	return true
}

// rotateClueGiver advances to the next player after the current
// clue-giver in join order, wrapping around. A vanished clue-giver
// restarts rotation at the front of the list.
func (r *Room) rotateClueGiver() {
	if len(r.players) == 0 {
		return
	}
	idx := -1
	for i, p := range r.players {
		if p.ID == r.clueGiverID {
			idx = i
			break
		}
	}
	r.clueGiverID = r.players[(idx+1)%len(r.players)].ID
}

// startRound picks a fresh spectrum and target and wipes round state.
func (r *Room) startRound() {
	pool := r.promptPool
	if len(pool) == 0 {
		pool = defaultSpectrums
	}
	picked := pool[rand.Intn(len(pool))]
	r.spectrum = &picked
	r.target = rand.Intn(101)
	r.clue = ""
	r.guesses = make(map[string]int)
	r.locked = make(map[string]struct{})
	r.finalGuess = nil
	r.lastReveal = nil
}

// clearRound wipes round state without starting a new round.
func (r *Room) clearRound() {
	r.spectrum = nil
	r.target = 0
	r.clue = ""
	r.guesses = make(map[string]int)
	r.locked = make(map[string]struct{})
	r.finalGuess = nil
	r.lastReveal = nil
}

// resetScores zeroes every cumulative counter for a fresh game.
func (r *Room) resetScores() {
	for id := range r.playerScores {
		r.playerScores[id] = 0
	}
	r.score = 0
}

// beginGame is shared by Start and Replay: round 1, clue-giver pointer
// parked on the last player so rotation lands on the first.
func (r *Room) beginGame() {
	r.resetScores()
	r.currentRound = 1
	r.clueGiverID = r.players[len(r.players)-1].ID
	r.rotateClueGiver()
	r.startRound()
	r.phase = PhaseClue
}

// Start begins round 1 from the lobby. Host-only; the sole guard failure
// reported back to the requester is having too few players.
func (r *Room) Start(actorID string, rounds int, roundsSet bool) (bool, error) {
	if r.phase != PhaseLobby || !r.isHost(actorID) {
		return false, nil
	}
	if len(r.players) < minPlayersToStart {
		return false, ErrNotEnoughPlayers
	}
	if roundsSet {
		r.totalRounds = clampRounds(rounds)
	}
	r.beginGame()
	return true, nil
}

// SubmitClue stores the clue-giver's clue and opens guessing.
func (r *Room) SubmitClue(actorID, text string) bool {
	if r.phase != PhaseClue || actorID != r.clueGiverID || !r.isPlayer(actorID) {
		return false
	}
	r.clue = truncateClue(text)
	r.phase = PhaseGuess
	return true
}

func truncateClue(text string) string {
	runes := []rune(text)
	if len(runes) > maxClueLength {
		runes = runes[:maxClueLength]
	}
	return string(runes)
}

// SubmitGuess upserts a guesser's pointer position. Later guesses
// overwrite earlier ones; locking is what makes a guess final.
func (r *Room) SubmitGuess(actorID string, value int) bool {
	if r.phase != PhaseGuess || !r.isGuesser(actorID) {
		return false
	}
	r.guesses[actorID] = clampGuess(value)
	return true
}

// LockGuess finalizes a guesser's answer for the round. A player may lock
// without ever moving the pointer; the default guess applies at scoring.
// Once every guesser has locked, the reveal fires automatically.
func (r *Room) LockGuess(actorID string) bool {
	if r.phase != PhaseGuess || !r.isGuesser(actorID) {
		return false
	}
	r.locked[actorID] = struct{}{}
	if r.allGuessersLocked() {
		r.reveal()
	}
	return true
}

func (r *Room) allGuessersLocked() bool {
	for _, p := range r.players {
		if p.ID == r.clueGiverID {
			continue
		}
		if _, ok := r.locked[p.ID]; !ok {
			return false
		}
	}
	return true
}

// ForceReveal lets the host end guessing without waiting for locks.
func (r *Room) ForceReveal(actorID string) bool {
	if r.phase != PhaseGuess || !r.isHost(actorID) {
		return false
	}
	r.reveal()
	return true
}

// reveal scores the round and applies the results.
func (r *Room) reveal() {
	rev := scoreRound(r.target, r.clueGiverID, r.players, r.guesses, r.locked)

	for id, result := range rev.PerPlayer {
		r.playerScores[id] += result.Points
	}
	if _, ok := r.playerScores[r.clueGiverID]; ok {
		r.playerScores[r.clueGiverID] += rev.ClueGiverPoints
	}
	r.score += rev.TeamDelta
	rev.TeamScore = r.score

	final := rev.FinalGuess
	r.finalGuess = &final
	r.lastReveal = &rev
	r.phase = PhaseReveal
}

// NextRound advances past a reveal: either into the next round or, when
// rounds are exhausted, into game over with scores frozen.
func (r *Room) NextRound(actorID string) bool {
	if r.phase != PhaseReveal || !r.isHost(actorID) {
		return false
	}
	if r.currentRound < r.totalRounds {
		r.currentRound++
		r.rotateClueGiver()
		r.startRound()
		r.phase = PhaseClue
		return true
	}
	r.clearRound()
	r.phase = PhaseGameOver
	return true
}

// Replay restarts a finished game with the same players and prompt pool.
func (r *Room) Replay(actorID string) bool {
	if r.phase != PhaseGameOver || !r.isHost(actorID) || len(r.players) == 0 {
		return false
	}
	r.beginGame()
	return true
}

// SetPromptPool replaces the room's spectrum pool. Host-only, lobby-only.
func (r *Room) SetPromptPool(actorID, text string) bool {
	if r.phase != PhaseLobby || !r.isHost(actorID) {
		return false
	}
	r.promptPool = parsePromptPool(text)
	return true
}

// SetTotalRounds updates the game length. Host-only, lobby-only. A
// missing or non-numeric value keeps the previous setting.
func (r *Room) SetTotalRounds(actorID string, rounds int, roundsSet bool) bool {
	if r.phase != PhaseLobby || !r.isHost(actorID) || !roundsSet {
		return false
	}
	r.totalRounds = clampRounds(rounds)
	return true
}
