package main

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ezrec/yb60/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger creates the root logger. Logs go to stderr unless a log file
// is configured, in which case the file is rotated.
func newLogger(cfg config.Config) (logger hclog.Logger, closer io.Closer) {
	var output io.Writer = os.Stderr
	closer = nopCloser{}

	if len(cfg.LogFile) != 0 {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		output = lj
		closer = lj
	}

	level := hclog.LevelFromString(cfg.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	if cfg.Verbose && level > hclog.Debug {
		level = hclog.Debug
	}

	logger = hclog.New(&hclog.LoggerOptions{
		Name:   "yb60",
		Level:  level,
		Output: output,
	})
	return
}
