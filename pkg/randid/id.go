// Package randid generates short random identifiers for history entries.
package randid

import "math/rand/v2"

// alphabet omits characters that are easy to misread when typed back
// from a terminal (0/o, 1/l/i).
const alphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// Generate returns a random ID of the given length drawn from alphabet.
func Generate(length int) string {
	if length <= 0 {
		return ""
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Valid reports whether id could have been produced by Generate.
func Valid(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if !isAlphabet(id[i]) {
			return false
		}
	}
	return true
}

func isAlphabet(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
