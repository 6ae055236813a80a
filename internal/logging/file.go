package logging

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Backend selects the Logger implementation.
type Backend string

const (
	BackendSlog Backend = "slog"
	BackendZap  Backend = "zap"
)

// Options describes where and how to log.
type Options struct {
	Backend Backend
	Level   string
	// Writer receives log lines. When nil and File is set, a rotating file
	// writer is used.
	Writer io.Writer
	File   string
}

// RotatingFile returns a size-rotated log file writer.
func RotatingFile(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

// New builds a Logger from opts. The returned closer releases the log file
// and flushes buffered output; it is never nil.
func New(opts Options) (Logger, func() error) {
	w := opts.Writer
	closeFn := func() error { return nil }
	if w == nil {
		if opts.File == "" {
			return Nop(), closeFn
		}
		f := RotatingFile(opts.File)
		w = f
		closeFn = f.Close
	}

	switch opts.Backend {
	case BackendZap:
		zl := NewJSONZapLogger(w, opts.Level)
		fileClose := closeFn
		return zl, func() error {
			_ = zl.Sync()
			return fileClose()
		}
	default:
		return NewJSONSlogLogger(w, opts.Level), closeFn
	}
}
