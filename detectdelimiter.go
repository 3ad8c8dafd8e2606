package fastqcpipe

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the most likely rune that would delimit the values
// in the reader, assuming a CSV-like file. Only runes listed in candidates are
// accepted; fallback is returned when none of them is detected.
func DetermineDelimiter(r io.Reader, fallback rune, candidates ...rune) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, delim := range delimiters {
		if len(delim) == 0 {
			continue
		}
		for _, c := range candidates {
			if rune(delim[0]) == c {
				return c
			}
		}
	}

	return fallback
}
