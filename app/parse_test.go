package app

import (
	"flag"
	"math"
	"testing"

	"github.com/urfave/cli/v2"
)

func limitContext(t *testing.T, value string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.Uint64(LimitFlag.Name, 0, "")
	if value != "" {
		if err := set.Set(LimitFlag.Name, value); err != nil {
			t.Fatal(err)
		}
	}
	return cli.NewContext(nil, set, nil)
}

func TestParseLimit(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		value    string
		expected uint32
	}{
		{value: "", expected: defaultLimit},
		{value: "0", expected: defaultLimit},
		{value: "30", expected: 30},
		{value: "4294967295", expected: math.MaxUint32},
		{value: "5000000000", expected: math.MaxUint32}, // above uint32, clamped
	} {
		if got := ParseLimit(limitContext(t, test.value)); got != test.expected {
			t.Fatalf("limit %q. got %v, wants %v", test.value, got, test.expected)
		}
	}
}
