package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericReference generates a random numeric reference of the given
// length. The first digit is never zero so the reference survives systems
// that strip leading zeros.
func GenerateNumericReference(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("reference length must be positive, got %d", length)
	}

	digits := make([]byte, length)
	for i := range digits {
		max := big.NewInt(10)
		min := int64(0)
		if i == 0 {
			max = big.NewInt(9)
			min = 1
		}
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate reference digit: %w", err)
		}
		digits[i] = byte('0' + min + n.Int64())
	}

	return string(digits), nil
}
