// Package main is the entry point for the selcore batch editor.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dshills/selcore/internal/config"
	"github.com/dshills/selcore/internal/editor"
	"github.com/dshills/selcore/internal/engine/buffer"
	"github.com/dshills/selcore/internal/logging"
	"github.com/dshills/selcore/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	scriptPath string
	source     string
	logLevel   string
	logFile    string
	outputPath string
	input      string
	watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := logging.New(cfg.Logging())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := edit(ctx, opts, cfg, logger); err != nil {
		if editor.IsUserError(err) {
			logger.Info("script refused", zap.Error(err))
		} else {
			logger.Error("edit failed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (options, error) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("selcore", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua script to run against the input")
	fs.StringVar(&opts.scriptPath, "s", "", "Lua script to run against the input (shorthand)")
	fs.StringVar(&opts.source, "e", "", "Lua source to run against the input")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Log to this file instead of stderr")
	fs.StringVar(&opts.outputPath, "o", "", "Write the result to this file instead of stdout")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the script whenever the configuration file changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "selcore - multi-selection batch editor\n\n")
		fmt.Fprintf(out, "Usage: selcore [options] [file]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  selcore -s upper.lua notes.txt\n")
		fmt.Fprintf(out, "  selcore -e 'sel.exec(\"selection.all\") sel.exec(\"edit.upperCase\")' < notes.txt\n")
		fmt.Fprintf(out, "  selcore -watch -c selcore.toml -s indent.lua -o out.txt notes.txt\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if showVersion {
		fmt.Printf("selcore %s (%s)\n", version, commit)
		return opts, flag.ErrHelp
	}
	if opts.scriptPath != "" && opts.source != "" {
		return opts, errors.New("-script and -e are mutually exclusive")
	}
	if opts.watch && opts.configPath == "" {
		return opts, errors.New("-watch requires -config")
	}
	if opts.logLevel != "" {
		if _, err := logging.ParseLevel(opts.logLevel); err != nil {
			return opts, err
		}
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.input = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	return opts, nil
}

// loadConfig reads the configuration file, if any, and applies the flag
// overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}
	applyOverrides(cfg, opts)
	return cfg, nil
}

func applyOverrides(cfg *config.Config, opts options) {
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
}

// edit runs the script against the input and writes the result. With
// -watch it then keeps running, editing the original input again with
// every configuration reloaded until ctx is done.
func edit(ctx context.Context, opts options, cfg *config.Config, logger *zap.Logger) error {
	text, err := readInput(opts.input)
	if err != nil {
		return err
	}

	// The watcher starts before the first run so no change is missed.
	var w *config.Watcher
	if opts.watch {
		w, err = config.NewWatcher(opts.configPath,
			config.WithWatchLogger(logger), config.WithDebounce(watchDebounce))
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if err := editText(ctx, opts, cfg, logger, text); err != nil {
		return err
	}
	if w == nil {
		return nil
	}

	logger.Info("watching configuration", zap.String("path", opts.configPath))
	for {
		select {
		case <-ctx.Done():
			return nil
		case cfg, ok := <-w.Updates():
			if !ok {
				return nil
			}
			applyOverrides(cfg, opts)
			if err := editText(ctx, opts, cfg, logger, text); err != nil {
				logger.Warn("edit after reload failed", zap.Error(err))
				continue
			}
			logger.Info("output rewritten after reload", zap.String("path", opts.configPath))
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			logger.Warn("configuration reload failed", zap.Error(err))
		}
	}
}

var watchDebounce = config.DefaultDebounce

func editText(ctx context.Context, opts options, cfg *config.Config, logger *zap.Logger, text []byte) error {
	bufOpts := append(cfg.BufferOptions(), buffer.WithLogger(logger))
	if opts.input != "" {
		bufOpts = append(bufOpts, buffer.WithName(opts.input))
	}
	buf, err := buffer.NewFromReader(bytes.NewReader(text), bufOpts...)
	if err != nil {
		return err
	}

	engine := script.NewEngine()
	defer engine.Close()

	ectx := editor.NewContext(buf,
		editor.WithOptions(cfg.EditorOptions()),
		editor.WithLogger(logger),
		editor.WithShell(newExecShell()),
		editor.WithMacroRunner(engine),
		editor.WithGoContext(ctx))

	switch {
	case opts.scriptPath != "":
		err = engine.RunFile(ectx, opts.scriptPath)
	case opts.source != "":
		err = engine.Run(ectx, opts.source)
	}
	if err != nil {
		return err
	}
	logger.Debug("edit done",
		zap.String("buffer", buf.Name()),
		zap.Stringer("id", buf.ID()),
		zap.Int("timestamp", buf.Timestamp()),
		zap.Int("selections", ectx.Selections().Len()))

	return writeOutput(opts.outputPath, buf.Text())
}

func readInput(path string) ([]byte, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	text, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return text, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
