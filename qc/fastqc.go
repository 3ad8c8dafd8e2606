// Package qc runs the external FastQC executable on merged fastq files.
package qc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/sirupsen/logrus"
)

const DefaultBinary = "fastqc"

// ErrNotInstalled means the executable could not be found on PATH.
var ErrNotInstalled = errors.New("quality-control executable not found")

// ExitError reports a QC run that started but exited non-zero.
type ExitError struct {
	Binary string
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Binary, e.Code)
}

type FastQC struct {
	// Binary is a name looked up on PATH, or a path. Defaults to fastqc.
	Binary string

	// OutDir is passed as -o when set.
	OutDir string

	// ExtraArgs go after the standard flags and before the files.
	ExtraArgs []string

	Log *logrus.Logger

	path string
}

func (f *FastQC) binary() string {
	if f.Binary == "" {
		return DefaultBinary
	}

	return f.Binary
}

func (f *FastQC) log() *logrus.Logger {
	if f.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}

	return f.Log
}

// Locate resolves the executable on PATH and remembers it for Run.
func (f *FastQC) Locate() (string, error) {
	p, err := exec.LookPath(f.binary())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotInstalled, f.binary(), err)
	}
	f.path = p

	f.log().Debugf("Found %s at %s", f.binary(), p)

	return p, nil
}

// Args is the argument list for one run over files.
func (f *FastQC) Args(threads int, files []string) []string {
	args := []string{"-t", strconv.Itoa(threads)}
	if f.OutDir != "" {
		args = append(args, "-o", f.OutDir)
	}
	args = append(args, f.ExtraArgs...)

	return append(args, files...)
}

// Run invokes the executable once with every file and waits for it to exit.
// A non-zero exit is returned as *ExitError. Nothing is run for an empty file
// list.
func (f *FastQC) Run(ctx context.Context, threads int, files []string) error {
	if len(files) == 0 {
		f.log().Warnln("No merged files to pass to", f.binary())
		return nil
	}

	if f.path == "" {
		if _, err := f.Locate(); err != nil {
			return err
		}
	}

	args := f.Args(threads, files)
	f.log().Infof("Running %s on %d files with %d threads", f.binary(), len(files), threads)
	f.log().WithField("args", args).Debugln("Command line")

	stdout := f.log().WriterLevel(logrus.DebugLevel)
	defer stdout.Close()
	stderr := f.log().WriterLevel(logrus.InfoLevel)
	defer stderr.Close()

	cmd := exec.CommandContext(ctx, f.path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return &ExitError{Binary: f.binary(), Code: exitErr.ExitCode()}
		}
		return pfx.Err(fmt.Errorf("running %s: %w", f.binary(), err))
	}

	f.log().Infof("%s completed", f.binary())

	return nil
}
