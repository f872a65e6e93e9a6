package utils

// IsPowerOfTwo checks if a number is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 computes the base-2 logarithm of a power of 2, -1 otherwise
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return -1
	}

	result := 0
	for n > 1 {
		n >>= 1
		result++
	}
	return result
}

// PrimeFactors returns the distinct prime factors of n in ascending order.
// Trial division is enough here: field moduli are capped at 32 bits.
func PrimeFactors(n uint64) []uint64 {
	var factors []uint64

	if n%2 == 0 && n > 1 {
		factors = append(factors, 2)
		for n%2 == 0 {
			n /= 2
		}
	}

	for d := uint64(3); d*d <= n; d += 2 {
		if n%d != 0 {
			continue
		}
		factors = append(factors, d)
		for n%d == 0 {
			n /= d
		}
	}

	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}
