// Package logging builds the application's logrus logger.
//
// The TUI owns the terminal, so logs go to a file under the app directory
// unless a writer is supplied.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xolan/well/internal/osutil"
)

// LogFile is the default log file name inside the app directory.
const LogFile = "well.log"

// Formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config selects level, format and destination.
type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// DefaultConfig logs info and above as text to the default file.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatText,
	}
}

// Validate checks level and format.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	switch strings.ToLower(c.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (use %q or %q)", c.Format, FormatText, FormatJSON)
	}
	return nil
}

// New returns a logger writing to w.
func New(cfg Config, w io.Writer) (*logrus.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := logrus.ParseLevel(cfg.Level)

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if strings.ToLower(cfg.Format) == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}
	return logger, nil
}

// Open creates a logger appending to cfg.File, or to the default log file
// when cfg.File is empty. The returned closer closes the file.
func Open(cfg Config) (*logrus.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		var err error
		path, err = osutil.AppFile(LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve log path: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := New(cfg, file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return logger, file, nil
}

// Discard returns a logger that drops everything. Used by tests and as a
// fallback when the log file cannot be opened.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Component scopes logger to a named component.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithField("component", name)
}
