package main

import (
	"math"
)

// PlayerResult records one guesser's outcome for a round. Guess and
// Distance stay nil when the player never moved their pointer.
type PlayerResult struct {
	Guess    *int `json:"guess,omitempty"`
	Distance *int `json:"distance,omitempty"`
	Points   int  `json:"points"`
}

// Reveal is the round-ending snapshot shown to every player. TeamScore is
// filled in by the room after the team delta has been applied.
type Reveal struct {
	Target          int                     `json:"target"`
	FinalGuess      int                     `json:"finalGuess"`
	FinalDistance   int                     `json:"finalDistance"`
	FinalPoints     int                     `json:"finalPoints"`
	TeamDelta       int                     `json:"teamDelta"`
	TeamScore       int                     `json:"teamScore"`
	ClueGiverID     string                  `json:"cluegiverId"`
	ClueGiverPoints int                     `json:"cluegiverPoints"`
	PerPlayer       map[string]PlayerResult `json:"perPlayer"`
}

// tierPoints maps guess-to-target distance onto the 0-4 point brackets.
func tierPoints(distance int) int {
	switch {
	case distance <= 10:
		return 4
	case distance <= 17:
		return 3
	case distance <= 24:
		return 2
	case distance <= 34:
		return 1
	default:
		return 0
	}
}

func roundedMean(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}

// scoreRound computes the reveal for one round. Every player except the
// clue-giver counts as a guesser: those who submitted a guess earn tier
// points, those who never did get a zero-point entry with no guess. The
// clue-giver earns the rounded mean of the scoring guessers' points, and
// the team delta is their sum.
//
// The displayed "final guess" is the rounded mean over players who both
// guessed and locked (50 if nobody did); its distance and tier are for
// display only and never feed back into any score. Forced reveals can fire
// before everyone locks, which is why the two notions of "who counts"
// deliberately differ.
func scoreRound(target int, clueGiverID string, players []PlayerInfo, guesses map[string]int, locked map[string]struct{}) Reveal {
	rev := Reveal{
		Target:      target,
		ClueGiverID: clueGiverID,
		PerPlayer:   make(map[string]PlayerResult),
	}

	guesserPointSum := 0
	guesserCount := 0
	lockedGuessSum := 0
	lockedGuessCount := 0

	for _, p := range players {
		if p.ID == clueGiverID {
			continue
		}

		guess, guessed := guesses[p.ID]
		if !guessed {
			rev.PerPlayer[p.ID] = PlayerResult{Points: 0}
			continue
		}

		distance := guess - target
		if distance < 0 {
			distance = -distance
		}
		points := tierPoints(distance)

		g, d := guess, distance
		rev.PerPlayer[p.ID] = PlayerResult{Guess: &g, Distance: &d, Points: points}

		guesserPointSum += points
		guesserCount++

		if _, isLocked := locked[p.ID]; isLocked {
			lockedGuessSum += guess
			lockedGuessCount++
		}
	}

	if guesserCount > 0 {
		rev.ClueGiverPoints = roundedMean(guesserPointSum, guesserCount)
	}
	rev.TeamDelta = guesserPointSum

	rev.FinalGuess = defaultGuessValue
	if lockedGuessCount > 0 {
		rev.FinalGuess = roundedMean(lockedGuessSum, lockedGuessCount)
	}
	rev.FinalDistance = rev.FinalGuess - target
	if rev.FinalDistance < 0 {
		rev.FinalDistance = -rev.FinalDistance
	}
	rev.FinalPoints = tierPoints(rev.FinalDistance)

	return rev
}
