// Package walk enumerates candidate source files for migration.
//
// It resolves a mix of explicit file paths and directory roots into a flat
// list of files: directories are walked recursively with build-output and
// version-control directories skipped and files filtered by extension,
// while explicit file paths pass through unfiltered.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Walker resolves path arguments to candidate files.
//
// Create instances with [New]. The zero configuration selects .rs files
// and skips target and .git directories.
type Walker struct {
	extensions []string
	ignored    []string
}

// Option configures a Walker.
type Option func(*Walker)

// New creates a Walker with the given options.
func New(opts ...Option) *Walker {
	w := &Walker{
		extensions: []string{".rs"},
		ignored:    []string{"target", ".git"},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WithExtensions sets the file extensions selected during directory scans.
func WithExtensions(extensions ...string) Option {
	return func(w *Walker) {
		w.extensions = extensions
	}
}

// WithIgnored sets the directory names skipped during directory scans.
func WithIgnored(names ...string) Option {
	return func(w *Walker) {
		w.ignored = names
	}
}

// Files resolves each argument to candidate file paths. No arguments means
// a recursive scan of the current directory. An explicit file path is
// returned as-is, bypassing the extension filter; a directory is walked
// recursively.
func (w *Walker) Files(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				// Never skip the root the caller asked for, even if its
				// name matches an ignored entry.
				if path != arg && slices.Contains(w.ignored, d.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if w.selects(d.Name()) {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	return files, nil
}

func (w *Walker) selects(name string) bool {
	for _, ext := range w.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}
