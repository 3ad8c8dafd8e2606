// Package locate finds the per-lane fastq files of a sample. Results are
// always returned in ascending lane order, whatever order the filesystem or
// bucket listing produced them in.
package locate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	fastqcpipe "github.com/RPINerd/FastQC-Pipeline"
	"github.com/carbocation/pfx"
	"github.com/sirupsen/logrus"
)

// ErrNoReads is returned when no lane file matches a sample and direction.
// It is the only way "nothing found" is signaled.
var ErrNoReads = errors.New("no lane files found")

var laneRegexp = regexp.MustCompile(`_L00(\d)_R`)

// Pattern is the glob used to recognize lane files for one sample and read
// direction. Glob metacharacters in the sample identifier match literally.
func Pattern(sampleID string, direction int) string {
	return fmt.Sprintf("%s_L00[1-4]_R%d*.fastq*", escapeGlob(sampleID), direction)
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}

	return b.String()
}

// LaneOf returns the lane number encoded in a lane file name, or 0 if the name
// carries none.
func LaneOf(name string) int {
	matches := laneRegexp.FindAllStringSubmatch(path.Base(filepath.ToSlash(name)), -1)
	if len(matches) == 0 {
		return 0
	}

	lane, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0
	}

	return lane
}

// Sort orders lane files by lane number, then by full path.
func Sort(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		li, lj := LaneOf(paths[i]), LaneOf(paths[j])
		if li != lj {
			return li < lj
		}
		return paths[i] < paths[j]
	})
}

// Locator searches local directory trees, and gs:// prefixes when Storage is
// set. Subdirectories that cannot be read are skipped and logged at debug
// level; an unreadable root is an error.
type Locator struct {
	Storage *storage.Client
	Context context.Context
	Log     *logrus.Logger
}

func (l *Locator) log() *logrus.Logger {
	if l.Log == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		return log
	}

	return l.Log
}

// Find is Locator.Find for local directories only.
func Find(root, sampleID string, direction int) ([]string, error) {
	return (&Locator{}).Find(root, sampleID, direction)
}

// Find returns the lane files for sampleID and direction below root, sorted by
// lane. Local results are absolute paths; bucket results are gs:// URIs.
func (l *Locator) Find(root, sampleID string, direction int) ([]string, error) {
	if sampleID == "" {
		return nil, fmt.Errorf("empty sample identifier")
	}
	if direction != 1 && direction != 2 {
		return nil, fmt.Errorf("read direction %d is not 1 or 2", direction)
	}

	pattern := Pattern(sampleID, direction)

	var matches []string
	var err error
	if fastqcpipe.IsGSPath(root) {
		matches, err = l.findInBucket(root, pattern)
	} else {
		matches, err = l.findLocal(root, pattern)
	}
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w for %s R%d under %s", ErrNoReads, sampleID, direction, root)
	}

	Sort(matches)

	return matches, nil
}

func (l *Locator) findLocal(root, pattern string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, pfx.Err(err)
	}

	matches := make([]string, 0, 4)
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p != absRoot && d != nil && d.IsDir() && errors.Is(err, fs.ErrPermission) {
				l.log().WithError(err).Debugf("Skipping unreadable directory %s", p)
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, p)
		}

		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	return matches, nil
}
