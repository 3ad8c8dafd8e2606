package threads

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		requested, jobs, available int
		want                       int
		oversubscribed             bool
	}{
		{0, 2, 8, 2, false},
		{0, 12, 8, 8, false},
		{0, 0, 8, 1, false},
		{-1, 3, 2, 2, false},
		{4, 2, 8, 4, false},
		{8, 2, 8, 8, false},
		{16, 2, 8, 8, true},
		{2, 2, 0, 1, true},
	}

	for _, c := range cases {
		got, err := Resolve(c.requested, c.jobs, c.available)
		if got != c.want {
			t.Errorf("Resolve(%d, %d, %d): got %d, want %d", c.requested, c.jobs, c.available, got, c.want)
		}
		if errors.Is(err, ErrOversubscribed) != c.oversubscribed {
			t.Errorf("Resolve(%d, %d, %d): unexpected warning state %v", c.requested, c.jobs, c.available, err)
		}
	}
}

func TestAvailable(t *testing.T) {
	if n := Available(); n < 1 {
		t.Errorf("expected at least one CPU, got %d", n)
	}
}
