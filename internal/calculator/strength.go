package calculator

// RelativeStrength returns the arithmetic difference between a ticker's
// return and the benchmark's return over the same window. Nil unless both
// operands are present. Convention is ticker minus benchmark.
func RelativeStrength(ret, benchmark *float64) *float64 {
	if ret == nil || benchmark == nil {
		return nil
	}
	d := *ret - *benchmark
	return &d
}
