package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewQuiet(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := New(Options{Out: &buf})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected info level, got %s", log.GetLevel())
	}

	log.Debugln("hidden")
	log.Infoln("Logging started!")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "Logging started!") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNewVerboseWritesLogFile(t *testing.T) {
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), DefaultLogFile)

	log, closer, err := New(Options{Verbose: true, LogPath: logPath, Out: &buf})
	if err != nil {
		t.Fatal(err)
	}

	log.Debugln("Cores reported: 8")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Cores reported: 8") {
		t.Errorf("log file is missing debug output: %q", data)
	}
	if !strings.Contains(buf.String(), "Cores reported: 8") {
		t.Errorf("console is missing debug output: %q", buf.String())
	}
}

func TestFatalClosesLogFile(t *testing.T) {
	var code int
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = os.Exit })

	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), DefaultLogFile)

	log, closer, err := New(Options{Verbose: true, LogPath: logPath, Out: &buf})
	if err != nil {
		t.Fatal(err)
	}

	log.Fatalln("Please provide -file")

	if code != 1 {
		t.Errorf("expected exit status 1, got %d", code)
	}
	if err := closer.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected the log file to be closed already, got %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Please provide -file") {
		t.Errorf("log file is missing the fatal message: %q", data)
	}
}
