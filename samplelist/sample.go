package samplelist

import (
	"fmt"
	"strings"
)

// Reads selects which read directions of a sample are processed.
type Reads int

const (
	ReadsBoth Reads = iota
	ReadsR1
	ReadsR2
)

// ParseReads accepts 1, 2, Both (any case) and the legacy value 3 for both.
// An empty string means both directions.
func ParseReads(s string) (Reads, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "r1":
		return ReadsR1, nil
	case "2", "r2":
		return ReadsR2, nil
	case "", "both", "3", "0":
		return ReadsBoth, nil
	}

	return ReadsBoth, fmt.Errorf("read direction %q is not one of 1, 2 or Both", s)
}

func (r Reads) String() string {
	switch r {
	case ReadsR1:
		return "1"
	case ReadsR2:
		return "2"
	}

	return "Both"
}

// Directions lists the read directions in ascending order.
func (r Reads) Directions() []int {
	switch r {
	case ReadsR1:
		return []int{1}
	case ReadsR2:
		return []int{2}
	}

	return []int{1, 2}
}

// Within restricts r to the global scope. A sample that asks for R1 while the
// run is limited to R2 yields no directions at all.
func (r Reads) Within(scope Reads) []int {
	if scope == ReadsBoth {
		return r.Directions()
	}
	if r == ReadsBoth || r == scope {
		return scope.Directions()
	}

	return nil
}

// Sample is one entry of the sample list.
type Sample struct {
	ID string

	// Dir overrides the run-wide search root when set.
	Dir string

	// Lanes is the declared number of lane files per direction; 0 if unknown.
	Lanes int

	Reads Reads
}
