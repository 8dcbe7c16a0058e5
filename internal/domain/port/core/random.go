package core

// RandomSource produces uniformly distributed integers for outcome decisions
type RandomSource interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) (int, error)
}
