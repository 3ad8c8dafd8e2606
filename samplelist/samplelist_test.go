package samplelist

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSimpleLayout(t *testing.T) {
	input := "#SampleID\nExp001_S1\nExp001_S2\n\nExp001_S3  \n"

	parser, err := New("SIMPLE")
	if err != nil {
		t.Fatal(err)
	}

	samples, err := parser.Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := []Sample{
		{ID: "Exp001_S1"},
		{ID: "Exp001_S2"},
		{ID: "Exp001_S3"},
	}
	if !reflect.DeepEqual(samples, want) {
		t.Errorf("got %+v, want %+v", samples, want)
	}
}

func TestExtendedLayout(t *testing.T) {
	input := strings.Join([]string{
		"#SampleID\tDirectory\tLanes\tReads",
		"Exp001_S1\t/data/run1\t4\tBoth",
		"Exp001_S2\t\t2\t1",
		"Exp001_S3\t/data/run2\t\tboth",
		"Exp001_S4\t/data/run2\t4\t2",
	}, "\n")

	parser, err := New("EXTENDED")
	if err != nil {
		t.Fatal(err)
	}

	samples, err := parser.Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := []Sample{
		{ID: "Exp001_S1", Dir: "/data/run1", Lanes: 4, Reads: ReadsBoth},
		{ID: "Exp001_S2", Dir: "", Lanes: 2, Reads: ReadsR1},
		{ID: "Exp001_S3", Dir: "/data/run2", Lanes: 0, Reads: ReadsBoth},
		{ID: "Exp001_S4", Dir: "/data/run2", Lanes: 4, Reads: ReadsR2},
	}
	if !reflect.DeepEqual(samples, want) {
		t.Errorf("got %+v, want %+v", samples, want)
	}
}

func TestAutoLayoutMixesLineShapes(t *testing.T) {
	input := "# run list\nExp001_S1\nExp001_S2\t/data\t4\t2\n"

	parser, err := New(LayoutAuto)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := parser.Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Reads != ReadsBoth || samples[0].Dir != "" {
		t.Errorf("simple line parsed as %+v", samples[0])
	}
	if samples[1].Reads != ReadsR2 || samples[1].Dir != "/data" || samples[1].Lanes != 4 {
		t.Errorf("extended line parsed as %+v", samples[1])
	}
}

func TestCommaSeparatedList(t *testing.T) {
	input := "#SampleID,Directory,Lanes,Reads\nExp001_S1,/data/run1,4,Both\nExp001_S2,/data/run1,4,1\nExp001_S3,/data/run1,4,2\n"

	parser, err := New(LayoutAuto)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := parser.Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(samples) != 3 || samples[1].ID != "Exp001_S2" || samples[1].Reads != ReadsR1 {
		t.Errorf("unexpected parse: %+v", samples)
	}
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"duplicate": "Exp001_S1\nExp001_S1\n",
		"lanes":     "Exp001_S1\t/data\tfour\tBoth\n",
		"reads":     "Exp001_S1\t/data\t4\t3x\n",
		"no id":     "\t/data\t4\tBoth\n",
	}

	for name, input := range cases {
		parser, err := New(LayoutAuto)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := parser.Read(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestUnknownLayout(t *testing.T) {
	if _, err := New("NOPE"); err == nil {
		t.Error("expected an error for an unknown layout")
	}
}

func TestReadFileCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.tsv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	zw.Write([]byte("#SampleID\nExp001_S1\n"))
	zw.Close()
	f.Close()

	parser, err := New(LayoutAuto)
	if err != nil {
		t.Fatal(err)
	}

	samples, err := ReadFile(path, parser)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 || samples[0].ID != "Exp001_S1" {
		t.Errorf("unexpected samples %+v", samples)
	}
}

func TestReadFileMissing(t *testing.T) {
	parser, _ := New(LayoutAuto)
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.tsv"), parser); err == nil {
		t.Error("expected an error for a missing sample list")
	}
}

func TestReadsWithin(t *testing.T) {
	cases := []struct {
		sample, scope Reads
		want          []int
	}{
		{ReadsBoth, ReadsBoth, []int{1, 2}},
		{ReadsBoth, ReadsR1, []int{1}},
		{ReadsR2, ReadsBoth, []int{2}},
		{ReadsR2, ReadsR2, []int{2}},
		{ReadsR1, ReadsR2, nil},
	}

	for _, c := range cases {
		if got := c.sample.Within(c.scope); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s within %s: got %v, want %v", c.sample, c.scope, got, c.want)
		}
	}
}

func TestParseReads(t *testing.T) {
	for in, want := range map[string]Reads{"1": ReadsR1, "2": ReadsR2, "Both": ReadsBoth, "BOTH": ReadsBoth, "3": ReadsBoth, "": ReadsBoth} {
		got, err := ParseReads(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q: got %s, want %s", in, got, want)
		}
	}
}
