package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupDisabledByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer := Setup(false, dir)
	defer closer.Close()

	if logger.GetLevel().String() != "disabled" {
		t.Errorf("Expected disabled logger, got level %s", logger.GetLevel())
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("Expected no log directory when debug is off")
	}
}

func TestSetupEnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer := Setup(true, dir)
	defer func() {
		closer.Close()
		log.SetOutput(io.Discard)
	}()

	logger.Info().Str("component", "test").Msg("hello")
	log.Println("stdlib line")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"message":"hello"`) {
		t.Errorf("Expected zerolog json line, got %q", content)
	}
	if !strings.Contains(content, "stdlib line") {
		t.Errorf("Expected standard log output in file, got %q", content)
	}
}

func TestSetupRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	if err := os.WriteFile(path, make([]byte, MaxSize+1), 0644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	_, closer := Setup(true, dir)
	closer.Close()
	log.SetOutput(io.Discard)

	old, err := os.Stat(path + ".old")
	if err != nil {
		t.Fatalf("Expected rotated file: %v", err)
	}
	if old.Size() != MaxSize+1 {
		t.Errorf("Expected rotated size %d, got %d", MaxSize+1, old.Size())
	}

	cur, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected fresh log file: %v", err)
	}
	if cur.Size() >= MaxSize {
		t.Errorf("Expected fresh log to be small, got %d bytes", cur.Size())
	}
}
