package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Numeric returns a uniformly random numeric code of the given width,
// zero-padded. Uses crypto/rand — never a counter or time-seeded source.
func Numeric(width int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < width; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", width, n), nil
}
