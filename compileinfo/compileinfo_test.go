package compileinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	cases := []struct {
		info CompileInfo
		want string
	}{
		{CompileInfo{}, "devel"},
		{CompileInfo{Version: "(devel)", Commit: "0123456789abcdef"}, "devel+0123456789ab"},
		{CompileInfo{Version: "v1.2.0", Commit: "abc", Modified: true}, "v1.2.0+abc-dirty"},
	}

	for _, c := range cases {
		if got := c.info.Short(); got != c.want {
			t.Errorf("%+v: got %s, want %s", c.info, got, c.want)
		}
	}
}

func TestString(t *testing.T) {
	s := CompileInfo{Package: "fastqcpipe", GoVersion: "go1.21", Modified: true}.String()
	if !strings.Contains(s, "fastqcpipe") || !strings.Contains(s, "modified") {
		t.Errorf("unexpected banner %q", s)
	}
}
