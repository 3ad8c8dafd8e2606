package samplelist

import (
	"sort"
	"strings"
)

// Column indexes are zero-based; -1 marks a column the layout does not carry.
type Layout struct {
	ColID    int
	ColDir   int
	ColLanes int
	ColReads int
}

// LayoutAuto picks SIMPLE or EXTENDED per line, by the number of fields.
const LayoutAuto = "AUTO"

var Layouts = map[string]Layout{
	// One sample identifier per line; read scope comes from the run.
	"SIMPLE": {
		ColID:    0,
		ColDir:   -1,
		ColLanes: -1,
		ColReads: -1,
	},
	// SampleID, Directory, Lanes, Reads
	"EXTENDED": {
		ColID:    0,
		ColDir:   1,
		ColLanes: 2,
		ColReads: 3,
	},
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts)+1)
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)
	names = append(names, LayoutAuto)

	return strings.Join(names, ", ")
}

func (l Layout) width() int {
	w := 0
	for _, col := range []int{l.ColID, l.ColDir, l.ColLanes, l.ColReads} {
		if col+1 > w {
			w = col + 1
		}
	}

	return w
}
