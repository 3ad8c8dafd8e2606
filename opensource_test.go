package fastqcpipe

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitGSPath(t *testing.T) {
	cases := []struct {
		path, bucket, object string
		ok                   bool
	}{
		{"gs://runs/2023/Exp001_S1_L001_R1_001.fastq.gz", "runs", "2023/Exp001_S1_L001_R1_001.fastq.gz", true},
		{"gs://runs", "runs", "", true},
		{"gs://runs/", "runs", "", true},
		{"gs://", "", "", false},
		{"/data/runs", "", "", false},
	}

	for _, c := range cases {
		bucket, object, err := SplitGSPath(c.path)
		if (err == nil) != c.ok {
			t.Errorf("%s: unexpected error state %v", c.path, err)
			continue
		}
		if bucket != c.bucket || object != c.object {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", c.path, bucket, object, c.bucket, c.object)
		}
	}
}

func TestOpenSourceLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Exp001_S1_L001_R1_001.fastq")
	if err := os.WriteFile(path, []byte("@r\nACGT\n+\nIIII\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, size, err := OpenSource(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if size != 16 {
		t.Errorf("size: got %d, want 16", size)
	}

	got, err := io.ReadAll(src)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(got), "@r") {
		t.Errorf("unexpected contents %q", got)
	}
}

func TestOpenSourceErrors(t *testing.T) {
	if _, _, err := OpenSource(context.Background(), filepath.Join(t.TempDir(), "missing.fastq"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}

	if _, _, err := OpenSource(context.Background(), "gs://bucket/object.fastq", nil); err == nil {
		t.Error("expected an error for a gs:// path without a client")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/path")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/abs/path" {
		t.Errorf("absolute paths should be untouched, got %s", got)
	}

	got, err = ExpandHome("~/runs")
	if err != nil {
		t.Skip("no current user:", err)
	}
	if strings.HasPrefix(got, "~") || !strings.HasSuffix(got, "runs") {
		t.Errorf("home was not expanded: %s", got)
	}
}
