package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

func init() {
	// Silence the default charmbracelet/log logger
	// All logging should go through our custom logger instance
	log.SetLevel(log.FatalLevel)
}

var (
	// Log is the process logger, nil until Init
	Log *log.Logger

	logFile *os.File
)

// Dir returns the log directory, $XDG_CACHE_HOME/auto-penguin-setup
func Dir() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		homeDir, _ := os.UserHomeDir()
		cacheDir = filepath.Join(homeDir, ".cache")
	}
	return filepath.Join(cacheDir, "auto-penguin-setup")
}

// Path returns the log file path
func Path() string {
	return filepath.Join(Dir(), "aps.log")
}

// Init creates the logger.
// When verbose is false, logs go to file only
// When verbose is true, logs go to both file and stderr at debug level
func Init(verbose bool) *log.Logger {
	Log = New(verbose)
	return Log
}

// New opens the log file and returns a logger writing to it. It never fails:
// when the file cannot be opened it logs to stderr instead.
func New(verbose bool) *log.Logger {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return stderrOnly(verbose)
	}

	f, err := os.OpenFile(Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return stderrOnly(verbose)
	}
	Close()
	logFile = f

	var output io.Writer = f
	if verbose {
		output = io.MultiWriter(f, os.Stderr)
	}

	l := log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
		Prefix:          "aps",
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return l
}

func stderrOnly(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.WarnLevel)
	}
	return l
}

// File returns the open log file, or nil when logging to stderr only
func File() *os.File {
	return logFile
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Close closes the log file
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
