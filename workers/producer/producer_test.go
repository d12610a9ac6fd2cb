package producer

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/Exca-DK/relay-util/primes"
)

type sliceSource struct {
	items   []uint32
	idx     int
	stopped bool
}

func (s *sliceSource) Next() uint32 {
	if s.idx >= len(s.items) {
		s.stopped = true
		return 0
	}
	v := s.items[s.idx]
	s.idx++
	return v
}

func (s *sliceSource) Stopped() bool { return s.stopped }

type recordingSink struct {
	sent     []uint32
	acquires int
	releases int
	err      error
}

func (s *recordingSink) Acquire() error {
	if s.err != nil {
		return s.err
	}
	s.acquires++
	return nil
}

func (s *recordingSink) Send(v uint32) error {
	s.sent = append(s.sent, v)
	return nil
}

func (s *recordingSink) Release() { s.releases++ }

func TestReportCadence(t *testing.T) {
	t.Parallel()
	var (
		expected = []uint32{7, 17, 29}
		sink     = &recordingSink{}
	)

	worker := New[uint32]("cadence", primes.NewSource(30), sink, Config[uint32]{ReportEvery: 3})
	stats := worker.Run()

	if stats.Err != nil {
		t.Fatal(stats.Err)
	}
	if stats.Units != 10 {
		t.Fatalf("unit count mismatch. got %v, wants 10", stats.Units)
	}
	if len(sink.sent) != len(expected) {
		t.Fatalf("report count mismatch. got %v, wants %v", sink.sent, expected)
	}
	for i, want := range expected {
		if sink.sent[i] != want {
			t.Fatalf("report %v mismatch. got %v, wants %v", i, sink.sent[i], want)
		}
	}
}

func TestAcquireReleasePairing(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	worker := New[uint32]("pairing", &sliceSource{items: []uint32{1, 2, 3}}, sink, Config[uint32]{ReportEvery: 1})
	worker.Run()

	if sink.acquires != 1 || sink.releases != 1 {
		t.Fatalf("sink not acquired/released exactly once. got %v/%v", sink.acquires, sink.releases)
	}
}

func TestSinkUnavailable(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{err: errors.New("gone")}
	worker := New[uint32]("unavailable", &sliceSource{items: []uint32{1}}, sink, Config[uint32]{})
	stats := worker.Run()

	if stats.Err == nil {
		t.Fatal("run should report the acquire failure")
	}
	if len(sink.sent) != 0 || sink.releases != 0 {
		t.Fatalf("nothing should happen on a failed acquire. sent %v, releases %v", sink.sent, sink.releases)
	}
}

func TestPrepareFailureSkipsReport(t *testing.T) {
	t.Parallel()
	var (
		units = []uint32{10, 20, 30, 40, 50}
		sink  = &recordingSink{}
	)

	prepare := func(v uint32) (uint32, error) {
		if v == 30 {
			return 0, errors.New("transient failure")
		}
		return v, nil
	}
	worker := New[uint32]("prepare", &sliceSource{items: units}, sink, Config[uint32]{ReportEvery: 1, Prepare: prepare})
	stats := worker.Run()

	if stats.Err != nil {
		t.Fatal(stats.Err)
	}
	// every unit past the first is reported, 30 is dropped by prepare
	expected := []uint32{20, 40, 50}
	if len(sink.sent) != len(expected) {
		t.Fatalf("report count mismatch. got %v, wants %v", sink.sent, expected)
	}
	for i, want := range expected {
		if sink.sent[i] != want {
			t.Fatalf("report %v mismatch. got %v, wants %v", i, sink.sent[i], want)
		}
	}
	if stats.Skipped != 1 {
		t.Fatalf("skip count mismatch. got %v, wants 1", stats.Skipped)
	}
	if stats.Units != len(units) {
		t.Fatalf("run should survive a failed preparation. got %v units, wants %v", stats.Units, len(units))
	}
}
