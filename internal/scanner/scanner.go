// Package scanner discovers GLSL source files under a set of file/directory
// targets, for the CLI's batch transformation mode (SPEC_FULL.md §4.I).
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// glslExtensions lists the file extensions scanner recognizes as GLSL
// source, absent an explicit include pattern.
var glslExtensions = []string{
	"vert", "frag", "geom", "tesc", "tese", "comp", "glsl", "vs", "fs",
}

// Scanner handles recursive directory traversal with filtering capabilities.
type Scanner struct {
	maxBytes       int64
	followSymlinks bool
	includeGlobs   []string
	excludeGlobs   []string
}

// Config holds scanner configuration options.
type Config struct {
	MaxBytes       int64
	FollowSymlinks bool
	IncludeGlobs   []string
	ExcludeGlobs   []string
}

// New creates a new scanner with the given configuration.
func New(cfg Config) *Scanner {
	return &Scanner{
		maxBytes:       cfg.MaxBytes,
		followSymlinks: cfg.FollowSymlinks,
		includeGlobs:   cfg.IncludeGlobs,
		excludeGlobs:   cfg.ExcludeGlobs,
	}
}

// ScanTargets processes a list of file and directory targets, returning a
// list of files to process.
func (s *Scanner) ScanTargets(ctx context.Context, targets []string) ([]string, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		targets = []string{cwd}
	}

	var allFiles []string
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		files, err := s.scanTarget(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("scanning target %s: %w", target, err)
		}
		allFiles = append(allFiles, files...)
	}

	return s.deduplicateFiles(allFiles), nil
}

// scanTarget processes a single target (file or directory).
func (s *Scanner) scanTarget(ctx context.Context, target string) ([]string, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return nil, fmt.Errorf("accessing target %s: %w", target, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !s.followSymlinks {
			return nil, nil
		}
		resolved, err := filepath.EvalSymlinks(target)
		if err != nil {
			return nil, fmt.Errorf("resolving symlink %s: %w", target, err)
		}
		return s.scanTarget(ctx, resolved)
	}

	if info.Mode().IsRegular() {
		if s.shouldProcessFile(target, info) {
			return []string{target}, nil
		}
		return nil, nil
	}

	if info.IsDir() {
		return s.scanDirectory(ctx, target)
	}

	return nil, nil
}

// scanDirectory recursively scans a directory for files.
func (s *Scanner) scanDirectory(ctx context.Context, dir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fullPath := filepath.Join(dir, path)

		if d.IsDir() {
			if s.shouldSkipDirectory(path) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("getting file info for %s: %w", fullPath, err)
			}
			if s.shouldProcessFile(path, info) {
				files = append(files, fullPath)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}

	return files, nil
}

// shouldProcessFile determines if a file should be processed based on size,
// extension, and the include/exclude doublestar patterns.
func (s *Scanner) shouldProcessFile(relPath string, info os.FileInfo) bool {
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return false
	}

	relPath = filepath.ToSlash(relPath)

	if len(s.includeGlobs) == 0 {
		ext := strings.TrimPrefix(filepath.Ext(relPath), ".")
		if !slices.Contains(glslExtensions, ext) {
			return false
		}
	} else {
		matched := false
		for _, pattern := range s.includeGlobs {
			if ok, _ := doublestar.Match(pattern, relPath); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range s.excludeGlobs {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}

	return true
}

// shouldSkipDirectory determines if a directory should be skipped during
// traversal.
func (s *Scanner) shouldSkipDirectory(path string) bool {
	dirname := filepath.Base(path)

	skipDirs := []string{".git", "vendor", "node_modules", "dist", "build"}
	if slices.Contains(skipDirs, dirname) {
		return true
	}

	if strings.HasPrefix(dirname, ".") && dirname != "." {
		return true
	}

	return false
}

// deduplicateFiles removes duplicate file paths from the list.
func (s *Scanner) deduplicateFiles(files []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, file := range files {
		if !seen[file] {
			seen[file] = true
			result = append(result, file)
		}
	}

	return result
}
