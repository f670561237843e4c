package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gologging "github.com/op/go-logging"
)

const root = "petlist"

var format = gologging.MustStringFormatter(
	`%{time:2006-01-02T15:04:05.000} %{level:.4s} %{module} %{message}`,
)

// Options selects level and destination. File "-" or "" writes to stderr.
type Options struct {
	Level string
	File  string
}

// Setup installs the process-wide backend. The returned closer releases
// the log file, if one was opened.
func Setup(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	w, closer, err := destination(opts.File)
	if err != nil {
		return nil, err
	}
	SetOutput(w, level)
	return closer, nil
}

// SetOutput routes all module loggers to w at level.
func SetOutput(w io.Writer, level gologging.Level) {
	backend := gologging.NewLogBackend(w, "", 0)
	leveled := gologging.AddModuleLevel(gologging.NewBackendFormatter(backend, format))
	leveled.SetLevel(level, "")
	gologging.SetBackend(leveled)
}

// ParseLevel accepts debug, info, notice, warning/warn, error, critical.
func ParseLevel(s string) (gologging.Level, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "":
		return gologging.INFO, nil
	case "WARN":
		return gologging.WARNING, nil
	}
	lvl, err := gologging.LogLevel(s)
	if err != nil {
		return gologging.INFO, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// For returns the logger of a sub-module, e.g. For("tui") logs as petlist.tui.
func For(module string) *gologging.Logger {
	if module == "" {
		return gologging.MustGetLogger(root)
	}
	return gologging.MustGetLogger(root + "." + module)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func destination(path string) (io.Writer, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		return os.Stderr, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}
