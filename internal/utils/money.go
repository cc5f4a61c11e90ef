package utils

// RoundDiv divides num by den and rounds the result to the nearest integer,
// halves away from zero. Money math in this codebase is integer cents only;
// every division is rounded through here before it feeds any subsequent sum.
func RoundDiv(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	if (num < 0) != (den < 0) {
		return (num - den/2) / den
	}
	return (num + den/2) / den
}

// Abs returns the absolute value of an amount in cents.
func Abs(cents int64) int64 {
	if cents < 0 {
		return -cents
	}
	return cents
}
