package docmigrate

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DefaultSettingsFile is the settings file loaded from the working
// directory when no --config flag is given.
const DefaultSettingsFile = ".docmigrate.yaml"

// Flags holds CLI flag names for migration configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	Config     string
	Transforms string
	Extensions string
	Ignore     string
	Jobs       string
	DryRun     string
}

// Config holds CLI flag values for migration configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewMigrator] to create a [Migrator].
type Config struct {
	Flags    Flags
	Registry map[string]func() Transform

	ConfigFile string
	Transforms string
	Extensions []string
	Ignore     []string
	Jobs       int
	DryRun     bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Config:     "config",
		Transforms: "transforms",
		Extensions: "extensions",
		Ignore:     "ignore",
		Jobs:       "jobs",
		DryRun:     "dry-run",
	}

	return &Config{Flags: f}
}

// DefaultRegistry returns the built-in transform constructors by name.
func DefaultRegistry() map[string]func() Transform {
	return map[string]func() Transform{
		"params":              NewParams,
		"type-params":         NewTypeParams,
		"signature":           NewSignature,
		"normalize-signature": NewSignatureNormalize,
	}
}

// RegisterFlags adds migration flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.ConfigFile, c.Flags.Config, "",
		fmt.Sprintf("settings file path (default %s if present)", DefaultSettingsFile))
	flags.StringVarP(&c.Transforms, c.Flags.Transforms, "t",
		"params,type-params,signature",
		"comma-separated list of enabled transforms (in application order)")
	flags.StringSliceVar(&c.Extensions, c.Flags.Extensions, []string{".rs"},
		"file extensions selected during directory scans")
	flags.StringSliceVar(&c.Ignore, c.Flags.Ignore, []string{"target", ".git"},
		"directory names skipped during directory scans")
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", runtime.NumCPU(),
		"maximum number of files processed concurrently")
	flags.BoolVarP(&c.DryRun, c.Flags.DryRun, "n", false,
		"report files that would change without writing them")
}

// RegisterCompletions registers shell completions for migration flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	var names []string

	for name := range c.Registry {
		names = append(names, name)
	}

	slices.Sort(names)

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Transforms,
		cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Transforms, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Extensions, c.Flags.Ignore, c.Flags.Jobs} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// Settings mirrors the optional YAML settings file. Zero values leave the
// corresponding flag defaults in place; explicit CLI flags win over the
// file.
type Settings struct {
	// Transforms lists enabled transforms, in application order.
	Transforms []string `json:"transforms,omitempty" yaml:"transforms"`
	// Extensions lists file extensions selected during directory scans.
	Extensions []string `json:"extensions,omitempty" yaml:"extensions"`
	// Ignore lists directory names skipped during directory scans.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore"`
	// Jobs caps how many files are processed concurrently.
	Jobs int `json:"jobs,omitempty" yaml:"jobs"`
}

// LoadSettings merges the YAML settings file into c. Flags changed on the
// command line keep their values. A missing default settings file is not
// an error; a missing explicit --config path is.
func (c *Config) LoadSettings(flags *pflag.FlagSet) error {
	path := c.ConfigFile
	explicit := path != ""

	if !explicit {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	var s Settings

	err = yaml.Unmarshal(data, &s)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidOption, path, err)
	}

	if len(s.Transforms) > 0 && !flags.Changed(c.Flags.Transforms) {
		c.Transforms = strings.Join(s.Transforms, ",")
	}

	if len(s.Extensions) > 0 && !flags.Changed(c.Flags.Extensions) {
		c.Extensions = s.Extensions
	}

	if len(s.Ignore) > 0 && !flags.Changed(c.Flags.Ignore) {
		c.Ignore = s.Ignore
	}

	if s.Jobs > 0 && !flags.Changed(c.Flags.Jobs) {
		c.Jobs = s.Jobs
	}

	return nil
}

// NewMigrator creates a [Migrator] from the configured transform names.
func (c *Config) NewMigrator() (*Migrator, error) {
	transforms, err := c.parseTransformNames(c.Transforms)
	if err != nil {
		return nil, err
	}

	if len(transforms) == 0 {
		return nil, fmt.Errorf("%w: no transforms enabled", ErrInvalidOption)
	}

	return NewMigrator(WithTransforms(transforms...)), nil
}

// parseTransformNames parses a comma-separated list of transform names and
// returns the corresponding Transform instances.
func (c *Config) parseTransformNames(names string) ([]Transform, error) {
	if names == "" {
		return nil, nil
	}

	parts := strings.Split(names, ",")
	transforms := make([]Transform, 0, len(parts))

	for _, name := range parts {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		constructor, ok := c.Registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
		}

		transforms = append(transforms, constructor())
	}

	return transforms, nil
}
