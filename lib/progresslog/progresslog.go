package progresslog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

const TimeFormat = "2006-01-02 15:04:05"

// Logger records pipeline milestones.
type Logger interface {
	Log(ctx context.Context, message string)
}

// File appends one "<timestamp> : <message>" line per call to Path. The
// file is opened and closed on every call so concurrent readers always see
// complete lines.
type File struct {
	Path string
	// defaults to time.Now
	Now func() time.Time
}

func NewFile(path string) File {
	return File{Path: path}
}

func (f File) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f File) Append(message string) error {
	fd, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(fd, "%s : %s\n", f.now().Format(TimeFormat), message)
	closeErr := fd.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// Log never fails, a progress line that cannot be written is reported
// through slog instead.
func (f File) Log(ctx context.Context, message string) {
	slog.DebugContext(ctx, "progress", "message", message)
	err := f.Append(message)
	if err != nil {
		slog.WarnContext(ctx, "failed to write progress log", "path", f.Path, "err", err)
	}
}

// Discard drops every message.
type Discard struct{}

func (Discard) Log(context.Context, string) {}
