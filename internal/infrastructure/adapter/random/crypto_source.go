package random

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
)

// CryptoSource draws uniformly distributed integers from the operating system CSPRNG
type CryptoSource struct{}

// NewCryptoSource creates a crypto-backed random source
func NewCryptoSource() core.RandomSource {
	return &CryptoSource{}
}

// Intn returns a uniform value in [0, n)
func (s *CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random bound must be positive, got %d", n)
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random bytes: %w", err)
	}
	return int(v.Int64()), nil
}
