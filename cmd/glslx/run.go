package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oxhq/glsltransform/internal/iohelper"
	"github.com/oxhq/glsltransform/internal/scanner"
	"github.com/oxhq/glsltransform/store"
	"github.com/oxhq/glsltransform/transform"
	"github.com/oxhq/glsltransform/transform/phases"
)

type runOptions struct {
	phaseNames   []string
	include      []string
	exclude      []string
	dryRun       bool
	diffContext  int
	cacheDSN     string
	maxBytes     int64
	followLinks  bool
	verbose      bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{diffContext: 3, maxBytes: 5 * 1024 * 1024}

	cmd := &cobra.Command{
		Use:   "run <file-or-dir...>",
		Short: "Apply a phase bundle to GLSL files, in place or as a dry-run diff",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMain(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.phaseNames, "phases", "p", nil, "Comma-separated built-in phase names to run (see list-phases). Required.")
	flags.StringSliceVar(&opts.include, "include", nil, "Include glob patterns (doublestar), relative to each scanned directory.")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "Exclude glob patterns (doublestar).")
	flags.BoolVarP(&opts.dryRun, "dry-run", "d", false, "Print a unified diff instead of writing files.")
	flags.IntVarP(&opts.diffContext, "diff-context", "C", 3, "Lines of context in --dry-run diffs.")
	flags.StringVar(&opts.cacheDSN, "cache", "", "Pattern cache SQLite DSN (default: $GLSLX_CACHE_DB from .env, else :memory:).")
	flags.Int64Var(&opts.maxBytes, "max-bytes", 5*1024*1024, "Skip files larger than this many bytes.")
	flags.BoolVar(&opts.followLinks, "follow-symlinks", false, "Follow symbolic links while scanning directories.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print a run ID and per-file status.")

	return cmd
}

func runMain(cmd *cobra.Command, targets []string, opts *runOptions) error {
	if len(opts.phaseNames) == 0 {
		return errors.New("glslx run: --phases is required (see glslx list-phases)")
	}

	runID := uuid.NewString()
	if opts.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "run %s: phases=%s\n", runID, strings.Join(opts.phaseNames, ","))
	}

	s := scanner.New(scanner.Config{
		MaxBytes:       opts.maxBytes,
		FollowSymlinks: opts.followLinks,
		IncludeGlobs:   opts.include,
		ExcludeGlobs:   opts.exclude,
	})
	files, err := s.ScanTargets(context.Background(), targets)
	if err != nil {
		return fmt.Errorf("scanning targets: %w", err)
	}
	if len(files) == 0 {
		return errors.New("glslx run: no files matched the given targets/globs")
	}

	cacheDSN := opts.cacheDSN
	if cacheDSN == "" {
		cacheDSN = defaultCacheDB()
	}
	cache, err := store.Open(cacheDSN, false)
	if err != nil {
		return fmt.Errorf("opening pattern cache: %w", err)
	}
	defer cache.Close()

	writer := iohelper.NewAtomicWriter(iohelper.DefaultWriteConfig())

	for _, path := range files {
		if err := runOneFile(cmd, path, opts, cache, writer); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func runOneFile(cmd *cobra.Command, path string, opts *runOptions, cache *store.Cache, writer *iohelper.AtomicWriter) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tr, err := phases.Resolve(opts.phaseNames)
	if err != nil {
		return err
	}

	mgr := transform.NewTransformationManager()
	mgr.SetCache(cache)
	mgr.RegisterTransformation(tr)

	out, err := mgr.Transform(string(src))
	if err != nil {
		return fmt.Errorf("transforming: %w", err)
	}

	if opts.dryRun {
		diff, err := unifiedDiff(string(src), out, path, opts.diffContext)
		if err != nil {
			return fmt.Errorf("rendering diff: %w", err)
		}
		if diff != "" {
			fmt.Fprint(cmd.OutOrStdout(), diff)
		} else if opts.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: no changes\n", path)
		}
		return nil
	}

	if out == string(src) {
		if opts.verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: no changes\n", path)
		}
		return nil
	}
	if err := writer.WriteFile(path, out); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	if opts.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: rewritten\n", path)
	}
	return nil
}
