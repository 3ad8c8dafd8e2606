// Package merge concatenates per-lane fastq files into one file per sample and
// read direction. Sources are copied as opaque byte streams: nothing is
// decompressed, validated or rewritten.
package merge

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	fastqcpipe "github.com/RPINerd/FastQC-Pipeline"
	"github.com/carbocation/pfx"
	"github.com/sirupsen/logrus"
)

type Merger struct {
	// Dir receives the merged files. Empty means the current directory.
	Dir string

	// Storage is needed only for gs:// sources.
	Storage *storage.Client

	Context context.Context
	Log     *logrus.Logger
}

func (m *Merger) ctx() context.Context {
	if m.Context == nil {
		return context.Background()
	}

	return m.Context
}

func (m *Merger) log() *logrus.Logger {
	if m.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}

	return m.Log
}

// Merge writes the concatenation of job.Sources, in order, to
// OutputName(m.Dir, job). Bytes go to a temporary file beside the target that
// is renamed into place only after every source was copied, so a failed read
// never leaves a truncated merged file behind. Sources are not removed.
func (m *Merger) Merge(job Job) (res Result, err error) {
	if len(job.Sources) == 0 {
		return res, fmt.Errorf("%s: no source files to merge", job)
	}

	target := OutputName(m.Dir, job)

	m.log().Infof("Launching merge for %s...", job)
	m.log().WithField("sources", job.Sources).Debugf("Merging into %s", target)

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.partial")
	if err != nil {
		return res, pfx.Err(err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var written int64
	for _, src := range job.Sources {
		if err = m.ctx().Err(); err != nil {
			return res, fmt.Errorf("%s: %w", job, err)
		}

		var n int64
		n, err = m.appendSource(tmp, src)
		if err != nil {
			return res, fmt.Errorf("%s: %w", job, err)
		}
		written += n
	}

	// CreateTemp makes the file 0600. FastQC and later readers may run as
	// another user, so merged files are group and world readable.
	if err = tmp.Chmod(0644); err != nil {
		return res, pfx.Err(err)
	}
	if err = tmp.Close(); err != nil {
		return res, pfx.Err(err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return res, pfx.Err(err)
	}

	m.log().Debugf("Wrote %d bytes to %s", written, target)

	return Result{
		Job:        job,
		Path:       target,
		Bytes:      written,
		Compressed: job.Compressed(),
	}, nil
}

func (m *Merger) appendSource(dst io.Writer, src string) (int64, error) {
	r, size, err := fastqcpipe.OpenSource(m.ctx(), src, m.Storage)
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer r.Close()

	n, err := io.Copy(dst, &contextReader{ctx: m.ctx(), r: r})
	if err != nil {
		return n, pfx.Err(fmt.Errorf("copying %s: %w", src, err))
	}
	if n != size {
		return n, fmt.Errorf("copying %s: expected %d bytes, copied %d", src, size, n)
	}

	return n, nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}

// Sniff peeks at the leading bytes of each source and warns when the sources
// of one job mix compressed and uncompressed data, or when the data disagrees
// with the output name. It never changes what Merge does.
func (m *Merger) Sniff(job Job) {
	var compressed, plain int
	for _, src := range job.Sources {
		dt, err := m.sniffSource(src)
		if err != nil {
			m.log().WithError(err).Debugf("Could not inspect %s", src)
			continue
		}
		if dt.Compressed() {
			compressed++
		} else {
			plain++
		}
	}

	switch {
	case compressed > 0 && plain > 0:
		m.log().Warnf("%s mixes %d compressed and %d uncompressed lane files; the merged file will not be readable as either", job, compressed, plain)
	case compressed > 0 && !job.Compressed():
		m.log().Warnf("%s lane files are compressed but their names do not contain %s", job, CompressionMarker)
	case plain > 0 && job.Compressed():
		m.log().Warnf("%s lane files are named %s but are not compressed", job, CompressionMarker)
	}
}

func (m *Merger) sniffSource(src string) (fastqcpipe.DataType, error) {
	r, _, err := fastqcpipe.OpenSource(m.ctx(), src, m.Storage)
	if err != nil {
		return fastqcpipe.DataTypeInvalid, err
	}
	defer r.Close()

	return fastqcpipe.DetectDataTypeAt(r)
}
