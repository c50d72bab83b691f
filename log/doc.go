// Package log provides structured logging handler construction for use
// with [log/slog].
//
// It supports json and logfmt output ([FormatJSON], [FormatLogfmt]) and the
// standard severity levels. Use [NewHandler] to create a handler directly,
// or [Config] for CLI flag integration via [github.com/spf13/pflag] with
// shell completion support via [github.com/spf13/cobra]:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
package log
