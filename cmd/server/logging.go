package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// parseLogLevel accepts slog level names ("debug", "WARN", "info+2").
// Anything unparseable logs at info.
func parseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Log files grow to logFileLimit, then are cut back to their newest
// logFileRetain bytes.
const (
	logFileLimit  = 6 << 20
	logFileRetain = 5 << 20
)

// cappedLog is the POLICYATLAS_LOG_PATH sink.
type cappedLog struct {
	mu     sync.Mutex
	f      *os.File
	size   int64
	limit  int64
	retain int64
}

func openCappedLog(path string) (*cappedLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	l := &cappedLog{f: f, size: info.Size(), limit: logFileLimit, retain: logFileRetain}
	if err := l.compact(); err != nil {
		f.Close()
		return nil, err
	}
	return l, nil
}

func (l *cappedLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.f.Write(p)
	l.size += int64(n)
	if err != nil {
		return n, err
	}
	return n, l.compact()
}

// compact keeps the tail of the file once it passes the limit. Callers
// hold mu, except during open.
func (l *cappedLog) compact() error {
	if l.size <= l.limit {
		return nil
	}
	tail := make([]byte, l.retain)
	n, err := l.f.ReadAt(tail, l.size-l.retain)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read log tail: %w", err)
	}
	if err := l.f.Truncate(0); err != nil {
		return fmt.Errorf("truncate log: %w", err)
	}
	// O_APPEND writes land at the new end after truncation.
	written, err := l.f.Write(tail[:n])
	l.size = int64(written)
	return err
}

func (l *cappedLog) Close() error {
	return l.f.Close()
}
