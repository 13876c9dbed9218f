package main

import (
	"crypto/rand"
)

// Alphabet excludes 0/O, 1/I and similar lookalikes so codes survive
// being read out loud across a living room.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// randomRoomCode generates a crypto-random room code of the given length,
// rejecting bytes that would bias the distribution.
func randomRoomCode(length int) string {
	max := byte(255 - (256 % len(codeAlphabet)))

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b <= max {
				out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
				if len(out) == length {
					return string(out)
				}
			}
		}
	}
}
