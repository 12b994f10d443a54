package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxLogSize is the size past which the previous log is rotated aside
const maxLogSize = 10 * 1024 * 1024

// setupLogging sends the standard logger to path when debug is on and discards it otherwise
// The terminal belongs to tcell, so log output never goes to stdout or stderr
func setupLogging(path string, debug bool) *os.File {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if !debug || path == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := strings.TrimSuffix(path, ext) + "-" + time.Now().Format("20060102-150405") + ext
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.Printf("[main] logging started, pid %d", os.Getpid())
	return f
}
