package primes

import "testing"

func TestKnownSequence(t *testing.T) {
	t.Parallel()
	var (
		expected = []uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
		src      = NewSource(30)
	)

	for i, want := range expected {
		got := src.Next()
		if src.Stopped() {
			t.Fatalf("source stopped early at index %v", i)
		}
		if got != want {
			t.Fatalf("prime %v mismatch. got %v, wants %v", i, got, want)
		}
	}

	src.Next()
	if !src.Stopped() {
		t.Fatal("source should be exhausted")
	}
}

func TestEmptyRange(t *testing.T) {
	t.Parallel()
	src := NewSource(2)
	src.Next()
	if !src.Stopped() {
		t.Fatal("no primes below 2")
	}
}

func TestStoppedStaysStopped(t *testing.T) {
	t.Parallel()
	src := NewSource(3)
	src.Next()
	src.Next()
	if !src.Stopped() {
		t.Fatal("source should be exhausted")
	}
	src.Next()
	if !src.Stopped() {
		t.Fatal("exhaustion should be terminal")
	}
}
