package main

import (
	"math"
	"sort"
)

// clientMessage covers every inbound event; unused fields stay empty.
type clientMessage struct {
	Type        string   `json:"type"`                  // "room:create", "room:join", "prompts:set", "config:setRounds", "game:start", "round:clue", "round:guess", "round:lock", "round:revealNow", "round:next", "game:replay"
	Code        string   `json:"code,omitempty"`        // room code, all events except room:create
	Name        string   `json:"name,omitempty"`        // room:create / room:join
	Text        string   `json:"text,omitempty"`        // prompts:set / round:clue
	Value       *float64 `json:"value,omitempty"`       // round:guess
	TotalRounds *float64 `json:"totalRounds,omitempty"` // config:setRounds / game:start
}

// sessionMessage tells a fresh connection its player ID, so the client can
// find itself in later state broadcasts.
type sessionMessage struct {
	Type string `json:"type"` // "session"
	ID   string `json:"id"`
}

// joinedMessage confirms room membership to the joining connection only.
type joinedMessage struct {
	Type string `json:"type"` // "room:joined"
	Code string `json:"code"`
}

// errorMessage is sent to the single requesting connection only.
type errorMessage struct {
	Type    string `json:"type"` // "room:error"
	Message string `json:"message"`
}

// stateMessage is the per-player room snapshot broadcast after every
// mutation. Target is present only in the clue-giver's copy, and only
// while the clue is being written; from the reveal onward everyone sees
// it inside LastReveal instead.
type stateMessage struct {
	Type         string         `json:"type"` // "room:state"
	Code         string         `json:"code"`
	HostID       string         `json:"hostId"`
	Players      []PlayerInfo   `json:"players"`
	PlayerScores map[string]int `json:"playerScores"`
	Phase        Phase          `json:"phase"`
	ClueGiverID  string         `json:"cluegiverId"`
	Spectrum     *Spectrum      `json:"spectrum,omitempty"`
	Target       *int           `json:"target,omitempty"`
	Clue         string         `json:"clue"`
	Guesses      map[string]int `json:"guesses"`
	Locked       []string       `json:"locked"`
	FinalGuess   *int           `json:"finalGuess,omitempty"`
	LastReveal   *Reveal        `json:"lastReveal,omitempty"`
	Score        int            `json:"score"`
	PromptPool   []Spectrum     `json:"promptPool,omitempty"`
	TotalRounds  int            `json:"totalRounds"`
	CurrentRound int            `json:"currentRound"`
}

// snapshotFor builds the state payload for one player. Everything is
// deep-copied: the payload is marshalled on the recipient's write pump
// while the hub goroutine keeps mutating the room.
func (r *Room) snapshotFor(playerID string) stateMessage {
	msg := stateMessage{
		Type:         "room:state",
		Code:         r.code,
		HostID:       r.hostID,
		Players:      append([]PlayerInfo(nil), r.players...),
		PlayerScores: make(map[string]int, len(r.playerScores)),
		Phase:        r.phase,
		ClueGiverID:  r.clueGiverID,
		Clue:         r.clue,
		Guesses:      make(map[string]int, len(r.guesses)),
		Locked:       make([]string, 0, len(r.locked)),
		Score:        r.score,
		TotalRounds:  r.totalRounds,
		CurrentRound: r.currentRound,
	}

	for id, score := range r.playerScores {
		msg.PlayerScores[id] = score
	}
	for id, guess := range r.guesses {
		msg.Guesses[id] = guess
	}
	for id := range r.locked {
		msg.Locked = append(msg.Locked, id)
	}
	sort.Strings(msg.Locked)

	if r.spectrum != nil {
		spectrum := *r.spectrum
		msg.Spectrum = &spectrum
	}
	if r.phase == PhaseClue && playerID == r.clueGiverID {
		target := r.target
		msg.Target = &target
	}
	if r.finalGuess != nil {
		final := *r.finalGuess
		msg.FinalGuess = &final
	}
	if r.lastReveal != nil {
		msg.LastReveal = copyReveal(r.lastReveal)
	}
	if len(r.promptPool) > 0 {
		msg.PromptPool = append([]Spectrum(nil), r.promptPool...)
	}

	return msg
}

func copyReveal(rev *Reveal) *Reveal {
	out := *rev
	out.PerPlayer = make(map[string]PlayerResult, len(rev.PerPlayer))
	for id, result := range rev.PerPlayer {
		copied := result
		if result.Guess != nil {
			g := *result.Guess
			copied.Guess = &g
		}
		if result.Distance != nil {
			d := *result.Distance
			copied.Distance = &d
		}
		out.PerPlayer[id] = copied
	}
	return &out
}

// coerceGuess turns an optional wire value into a stored guess. Missing or
// non-finite values fall back to the midpoint rather than being rejected.
func coerceGuess(value *float64) int {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return defaultGuessValue
	}
	return clampGuess(int(math.Round(*value)))
}

// coerceRounds turns an optional wire value into a round count, reporting
// whether a usable number was supplied at all.
func coerceRounds(value *float64) (int, bool) {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return 0, false
	}
	return int(math.Round(*value)), true
}
