// Package primes provides the demonstration workload: trial-division
// primality testing. It exists to burn cpu on a worker goroutine, not
// to be fast.
package primes

// Source yields successive primes below a candidate limit. It
// implements the producer source contract.
type Source struct {
	limit   uint32
	next    uint32
	stopped bool
}

func NewSource(limit uint32) *Source {
	return &Source{limit: limit, next: 2}
}

// Next returns the next prime. The returned value is meaningless once
// Stopped reports true.
func (s *Source) Next() uint32 {
	for candidate := s.next; candidate < s.limit; candidate++ {
		if isPrime(candidate) {
			s.next = candidate + 1
			return candidate
		}
	}
	s.stopped = true
	return 0
}

func (s *Source) Stopped() bool {
	return s.stopped
}

// intentionally naive, every divisor below n is tried
func isPrime(n uint32) bool {
	if n < 2 {
		return false
	}
	for d := uint32(2); d < n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
