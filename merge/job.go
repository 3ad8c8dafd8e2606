package merge

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CompressionMarker in any source path marks the merged output as gzip.
const CompressionMarker = ".gz"

// Job concatenates the lane files of one sample and read direction.
type Job struct {
	SampleID  string
	Direction int

	// Sources are already in lane order.
	Sources []string
}

func (j Job) String() string {
	return fmt.Sprintf("%s R%d", j.SampleID, j.Direction)
}

// Compressed reports whether any source path contains CompressionMarker. This
// is a plain presence test, so a marker at index 0 counts as well.
func (j Job) Compressed() bool {
	for _, src := range j.Sources {
		if strings.Contains(src, CompressionMarker) {
			return true
		}
	}

	return false
}

// OutputName is <dir>/<sample>_R<direction>.fastq, with .gz appended when the
// job is Compressed. An empty dir means the current directory.
func OutputName(dir string, j Job) string {
	name := fmt.Sprintf("%s_R%d.fastq", j.SampleID, j.Direction)
	if j.Compressed() {
		name += CompressionMarker
	}

	if dir == "" {
		return name
	}

	return filepath.Join(dir, name)
}

// Result describes a merged file on disk.
type Result struct {
	Job        Job
	Path       string
	Bytes      int64
	Compressed bool
}
