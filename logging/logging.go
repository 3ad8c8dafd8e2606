// Package logging builds the logger that is handed to every pipeline stage.
package logging

import (
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/sirupsen/logrus"
)

// DefaultLogFile receives a copy of verbose output.
const DefaultLogFile = "fastqc_pipe.log"

var exit = os.Exit

type Options struct {
	// Verbose switches to debug level and tees output into LogPath.
	Verbose bool

	// LogPath defaults to DefaultLogFile. Only used when Verbose is set.
	LogPath string

	// Out defaults to os.Stdout.
	Out io.Writer
}

// New returns a configured logger and a closer for any log file it opened.
// The closer is never nil. Fatal log calls close the log file before exiting.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(logrus.InfoLevel)
	log.SetOutput(out)

	if !opts.Verbose {
		return log, nopCloser{}, nil
	}

	logPath := opts.LogPath
	if logPath == "" {
		logPath = DefaultLogFile
	}

	f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	log.SetLevel(logrus.DebugLevel)
	log.SetOutput(io.MultiWriter(out, f))

	// Fatal exits skip deferred calls, so the log file is closed here.
	log.ExitFunc = func(code int) {
		f.Sync()
		f.Close()
		exit(code)
	}

	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
