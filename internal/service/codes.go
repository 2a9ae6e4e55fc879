package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin  = 1000
	codeSpan = 9000
)

// generateCodePair returns the two 4-digit verification codes for an order.
// The first draw is uniform over [1000, 9999]; the second is uniform over the
// 8999 values of that range excluding the first, so the pair never collides
// and no retry loop is needed.
func generateCodePair() (happy, complete string, err error) {
	first, err := randBelow(codeSpan)
	if err != nil {
		return "", "", err
	}
	offset, err := randBelow(codeSpan - 1)
	if err != nil {
		return "", "", err
	}
	second := (first + 1 + offset) % codeSpan

	return strconv.Itoa(codeMin + first), strconv.Itoa(codeMin + second), nil
}

func randBelow(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
