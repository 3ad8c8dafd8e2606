package fastqcpipe

import (
	"strings"
	"testing"
)

func TestDetermineDelimiter(t *testing.T) {
	csv := "a,b,c\nd,e,f\ng,h,i\n"
	if got := DetermineDelimiter(strings.NewReader(csv), '\t', ',', ';'); got != ',' {
		t.Errorf("got %q, want ','", got)
	}

	if got := DetermineDelimiter(strings.NewReader("abc\ndef\n"), '\t', ','); got != '\t' {
		t.Errorf("got %q, want the fallback", got)
	}
}
