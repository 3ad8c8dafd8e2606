package pipeline

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/RPINerd/FastQC-Pipeline/merge"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// ManifestRow is one merged file in the tab-delimited manifest.
type ManifestRow struct {
	SampleID   string `csv:"sample_id"`
	Direction  int    `csv:"direction"`
	MergedPath string `csv:"merged_path"`
	Bytes      int64  `csv:"bytes"`
	Compressed bool   `csv:"compressed"`
	Sources    string `csv:"sources"`
}

func manifestRows(results []merge.Result) []*ManifestRow {
	rows := make([]*ManifestRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, &ManifestRow{
			SampleID:   res.Job.SampleID,
			Direction:  res.Job.Direction,
			MergedPath: res.Path,
			Bytes:      res.Bytes,
			Compressed: res.Compressed,
			Sources:    strings.Join(res.Job.Sources, ","),
		})
	}

	return rows
}

// WriteManifest records which lane files went into which merged file.
func WriteManifest(path string, results []merge.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := gocsv.MarshalCSV(manifestRows(results), gocsv.NewSafeCSVWriter(w)); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
