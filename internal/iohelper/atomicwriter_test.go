package iohelper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultWriteConfig(t *testing.T) {
	config := DefaultWriteConfig()

	if config.TempSuffix != ".glslx.tmp" {
		t.Errorf("expected TempSuffix '.glslx.tmp', got '%s'", config.TempSuffix)
	}
	if !config.BackupOriginal {
		t.Error("expected BackupOriginal to be true")
	}
	if config.UseFsync {
		t.Error("expected UseFsync to be false by default")
	}
}

func TestNewAtomicWriter(t *testing.T) {
	config := DefaultWriteConfig()
	writer := NewAtomicWriter(config)

	if writer == nil {
		t.Fatal("expected non-nil AtomicWriter")
	}
	if writer.config.TempSuffix != config.TempSuffix {
		t.Error("config not properly set in AtomicWriter")
	}
}

func TestAtomicWriterWriteFileSimple(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.glsl")

	config := DefaultWriteConfig()
	config.BackupOriginal = false
	writer := NewAtomicWriter(config)

	content := "void main() {}\n"
	if err := writer.WriteFile(testFile, content); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != content {
		t.Errorf("expected content %q, got %q", content, string(data))
	}
}

func TestAtomicWriterWriteFileWithBackup(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.glsl")

	initialContent := "void old() {}\n"
	if err := os.WriteFile(testFile, []byte(initialContent), 0o644); err != nil {
		t.Fatalf("failed to create initial file: %v", err)
	}

	writer := NewAtomicWriter(DefaultWriteConfig())
	newContent := "void new() {}\n"
	if err := writer.WriteFile(testFile, newContent); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != newContent {
		t.Errorf("expected new content %q, got %q", newContent, string(data))
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	var foundBackup bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "test.glsl.bak.") {
			foundBackup = true
			backupContent, err := os.ReadFile(filepath.Join(tempDir, e.Name()))
			if err != nil {
				t.Fatalf("failed to read backup: %v", err)
			}
			if string(backupContent) != initialContent {
				t.Errorf("expected backup content %q, got %q", initialContent, string(backupContent))
			}
		}
	}
	if !foundBackup {
		t.Error("expected a backup file to be created")
	}
}

func TestAtomicWriterWriteFileNoBackupWhenFileAbsent(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "new.glsl")

	writer := NewAtomicWriter(DefaultWriteConfig())
	if err := writer.WriteFile(testFile, "void main() {}\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file (no backup for a new file), got %d", len(entries))
	}
}

func TestAtomicWriterLeavesNoTempFileOnSuccess(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.glsl")

	config := DefaultWriteConfig()
	config.BackupOriginal = false
	writer := NewAtomicWriter(config)

	if err := writer.WriteFile(testFile, "void main() {}\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := os.Stat(testFile + config.TempSuffix); !os.IsNotExist(err) {
		t.Error("expected temp file to be removed after a successful rename")
	}
}
