package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// Join codes avoid 0/O and 1/I so they survive being read out loud.
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateJoinCode returns a human-enterable team join code.
func GenerateJoinCode(length int) string {
	code := make([]byte, length)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return ""
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(code)
}

// GenerateRandomToken generates a random hex token of the specified length.
func GenerateRandomToken(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)[:length]
}
