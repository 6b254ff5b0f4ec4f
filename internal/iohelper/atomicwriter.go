// Package iohelper provides the CLI's file-write primitive: a crash-safe
// write-then-rename, with an optional timestamped backup of the previous
// contents.
package iohelper

import (
	"fmt"
	"os"
	"time"
)

// WriteConfig controls atomic writing behavior.
type WriteConfig struct {
	UseFsync       bool   // Force fsync for durability
	TempSuffix     string // Suffix for the temporary file
	BackupOriginal bool   // Write a timestamped backup before overwriting
}

// DefaultWriteConfig provides sensible defaults for the CLI's in-place mode.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{
		UseFsync:       false,
		TempSuffix:     ".glslx.tmp",
		BackupOriginal: true,
	}
}

// AtomicWriter writes file contents via a temp-file-then-rename sequence so
// a process killed mid-write never leaves a truncated file in place.
type AtomicWriter struct {
	config WriteConfig
}

func NewAtomicWriter(config WriteConfig) *AtomicWriter {
	return &AtomicWriter{config: config}
}

// WriteFile atomically replaces path's contents with content.
func (aw *AtomicWriter) WriteFile(path, content string) error {
	originalInfo, statErr := os.Stat(path)
	fileMode := os.FileMode(0o644)
	if statErr == nil {
		fileMode = originalInfo.Mode()
	}

	if aw.config.BackupOriginal && statErr == nil {
		if err := aw.createBackup(path); err != nil {
			return fmt.Errorf("creating backup of %s: %w", path, err)
		}
	}

	tempPath := path + aw.config.TempSuffix
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing temp file for %s: %w", path, err)
	}

	if aw.config.UseFsync {
		if err := tempFile.Sync(); err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return fmt.Errorf("syncing temp file for %s: %w", path, err)
		}
	}

	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file into place for %s: %w", path, err)
	}

	return nil
}

// createBackup copies path's current contents to path.bak.<timestamp>.
func (aw *AtomicWriter) createBackup(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	backupPath := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, content, perm); err != nil {
		return err
	}
	return os.Chmod(backupPath, perm)
}
