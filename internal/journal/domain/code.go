package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the fixed length of generated invite codes.
const CodeLength = 8

// codeAlphabet is uppercase letters and digits with the visually ambiguous
// characters 0, O, I, and 1 removed.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode draws a fixed-length invite code from the unambiguous
// alphabet using a cryptographically secure random source. Uniqueness
// against existing codes is the caller's responsibility.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = CodeLength
	}
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		code[i] = codeAlphabet[index.Int64()]
	}
	return string(code), nil
}
