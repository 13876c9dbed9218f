package main

import (
	"strings"
	"unicode/utf8"
)

const (
	maxPromptSideLength = 50
	maxPromptPairs      = 250
)

// Delimiters checked in priority order; the first one present in a line wins.
var promptDelimiters = []string{"|", ",", "->", "—"}

// Spectrum is one left/right label pair, e.g. "Cold" and "Hot".
type Spectrum struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// parsePromptPool turns free-form text into spectrum pairs, one per line.
// Malformed lines are dropped without complaint so a host can paste in a
// list copied from anywhere.
func parsePromptPool(text string) []Spectrum {
	pairs := make([]Spectrum, 0)

	for _, line := range strings.Split(text, "\n") {
		if len(pairs) >= maxPromptPairs {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var left, right string
		found := false
		for _, delim := range promptDelimiters {
			if idx := strings.Index(line, delim); idx >= 0 {
				left = strings.TrimSpace(line[:idx])
				right = strings.TrimSpace(line[idx+len(delim):])
				found = true
				break
			}
		}
		if !found {
			continue
		}

		if left == "" || right == "" {
			continue
		}
		if utf8.RuneCountInString(left) > maxPromptSideLength || utf8.RuneCountInString(right) > maxPromptSideLength {
			continue
		}

		pairs = append(pairs, Spectrum{Left: left, Right: right})
	}

	return pairs
}

// defaultSpectrums is used whenever a room has no host-provided pool.
var defaultSpectrums = []Spectrum{
	{Left: "Cold", Right: "Hot"},
	{Left: "Underrated", Right: "Overrated"},
	{Left: "Scary", Right: "Not scary"},
	{Left: "Round", Right: "Pointy"},
	{Left: "Smells bad", Right: "Smells good"},
	{Left: "Guilty pleasure", Right: "Openly loved"},
	{Left: "Useless", Right: "Essential"},
	{Left: "Low calorie", Right: "High calorie"},
	{Left: "Quiet", Right: "Loud"},
	{Left: "Dry", Right: "Wet"},
	{Left: "Cheap", Right: "Expensive"},
	{Left: "Weird", Right: "Normal"},
	{Left: "Bad habit", Right: "Good habit"},
	{Left: "Villain", Right: "Hero"},
	{Left: "Fantasy", Right: "Sci-fi"},
	{Left: "Forbidden", Right: "Encouraged"},
	{Left: "Hard to spell", Right: "Easy to spell"},
	{Left: "Mild", Right: "Spicy"},
	{Left: "Overpaid", Right: "Underpaid"},
	{Left: "Dangerous", Right: "Safe"},
}
