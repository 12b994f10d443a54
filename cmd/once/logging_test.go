package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	logFile := setupLogging(filepath.Join(t.TempDir(), "once.log"), false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
	if output := log.Writer(); output != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", output)
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	logPath := filepath.Join(t.TempDir(), "logs", "once.log")
	logFile := setupLogging(logPath, true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	log.Println("Test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
	if output := log.Writer(); output == os.Stdout || output == os.Stderr {
		t.Error("Log output should not be stdout or stderr")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	logDir := t.TempDir()
	logPath := filepath.Join(logDir, "once.log")
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	logFile := setupLogging(logPath, true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != "once.log" && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}
