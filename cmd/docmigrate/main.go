// Package main provides the CLI entry point for docmigrate, a tool that
// rewrites structured doc-comment sections in Rust source trees into
// fp_macros attribute invocations.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/docmigrate"
	"go.jacobcolvin.com/docmigrate/log"
	"go.jacobcolvin.com/docmigrate/profile"
	"go.jacobcolvin.com/docmigrate/version"
	"go.jacobcolvin.com/docmigrate/walk"
)

func main() {
	cfg := docmigrate.NewConfig()
	cfg.Registry = docmigrate.DefaultRegistry()

	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()
	profiler := profCfg.NewProfiler()

	rootCmd := &cobra.Command{
		Use:   "docmigrate [flags] [path ...]",
		Short: "Migrate doc-comment sections to fp_macros attributes",
		Long: `docmigrate rewrites "### Parameters", "### Type Parameters", and
"### Type Signature" doc-comment sections into #[doc_params(...)],
#[doc_type_params(...)], and #[hm_signature] attributes, preserving the
documentation text as the attribute payload and keeping the matching
"use fp_macros::...;" line present exactly once per changed file.

With no arguments the current directory is scanned recursively. Each
argument may be a single file (processed regardless of extension) or a
directory (scanned recursively). Already-migrated files are no-ops, so
the tool is safe to re-run over a whole tree.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Stop()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cfg.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			return run(cfg, args, cmd.OutOrStdout())
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newSchemaCmd(), newVersionCmd())

	for _, register := range []func(*cobra.Command) error{
		cfg.RegisterCompletions,
		logCfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *docmigrate.Config, args []string, out io.Writer) error {
	m, err := cfg.NewMigrator()
	if err != nil {
		return err
	}

	walker := walk.New(
		walk.WithExtensions(cfg.Extensions...),
		walk.WithIgnored(cfg.Ignore...),
	)

	files, err := walker.Files(args)
	if err != nil {
		return fmt.Errorf("%w: %w", docmigrate.ErrReadInput, err)
	}

	// Files are independent units of work; process them concurrently. The
	// report writer is shared across workers and must be serialized.
	var (
		g      errgroup.Group
		failed atomic.Int64
	)

	report := &syncWriter{w: out}

	g.SetLimit(max(cfg.Jobs, 1))

	for _, path := range files {
		g.Go(func() error {
			err := processFile(m, path, cfg.DryRun, report)
			if err != nil {
				slog.Error("processing file", slog.String("path", path), slog.Any("error", err))
				failed.Add(1)
			}

			return nil
		})
	}

	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d file(s) failed", n)
	}

	return nil
}

// syncWriter serializes writes from concurrent file workers to a shared
// report writer.
type syncWriter struct {
	w  io.Writer
	mu sync.Mutex
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}

// processFile migrates a single file in place. Files that are not valid
// UTF-8 text are skipped with a notice; files with no matching blocks are
// left untouched on disk.
func processFile(m *docmigrate.Migrator, path string, dryRun bool, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", docmigrate.ErrReadInput, err)
	}

	if !utf8.Valid(src) {
		slog.Warn("skipping binary file", slog.String("path", path))

		return nil
	}

	result, changed := m.Process(src)
	if !changed {
		return nil
	}

	if !dryRun {
		err = os.WriteFile(path, result, 0o644)
		if err != nil {
			return fmt.Errorf("%w: %w", docmigrate.ErrWriteOutput, err)
		}
	}

	fmt.Fprintf(out, "Updated %s\n", path)

	return nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := jsonschema.For[docmigrate.Settings](nil)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return err
			}

			out = append(out, '\n')

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := version.Version
			if v == "" {
				v = "devel"
			}

			built := version.BuildDate
			if built == "" {
				built = "unknown"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "docmigrate %s (revision %s, built %s, %s)\n",
				v, version.Revision, built, version.GoVersion)
		},
	}
}
