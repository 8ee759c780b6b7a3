package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sbsdiff/internal/app"
	"sbsdiff/internal/config"
	"sbsdiff/internal/diffview"
	"sbsdiff/internal/input"
	"sbsdiff/internal/logging"
	"sbsdiff/internal/watch"
)

// errDifferent makes the process exit 1 without printing anything.
var errDifferent = errors.New("texts differ")

type options struct {
	gitRev       string
	text         bool
	threshold    int
	context      int
	patchContext int
	tabWidth     int
	noCompact    bool
	format       string
	width        int
	color        string
	interactive  bool
	watch        bool
	exitCode     bool
	logFile      string
	configPath   string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "sbsdiff [flags] LEFT RIGHT",
		Short: "Side-by-side diff of two texts",
		Long: `Compare two texts side by side.

LEFT and RIGHT are file paths, "-" for stdin, or literal strings with --text.
With --git REV only one PATH is given and compared against its content at REV.
Gzip and zstd compressed files are decompressed transparently.`,
		Example: `  sbsdiff old.txt new.txt
  sbsdiff --git HEAD main.go
  sbsdiff --text "Draft title." "Final title. Now longer."
  sbsdiff -i --watch config.yaml config.yaml.new`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.gitRev, "git", "", "compare `REV`:PATH against the working copy of PATH")
	f.BoolVar(&o.text, "text", false, "treat LEFT and RIGHT as literal texts")
	f.IntVar(&o.threshold, "threshold", diffview.DefaultCollapseThreshold, "shortest unchanged run that collapses into a gap")
	f.IntVar(&o.context, "context", diffview.DefaultContextLines, "rows kept visible around a collapsed gap")
	f.IntVar(&o.patchContext, "patch-context", 3, "context lines in unified output")
	f.IntVar(&o.tabWidth, "tab-width", 4, "tab stop width")
	f.BoolVar(&o.noCompact, "no-compact", false, "show every unchanged row")
	f.StringVar(&o.format, "format", formatSplit, "output format: split, unified, json or stat")
	f.IntVar(&o.width, "width", 0, "output width in cells (default: terminal width)")
	f.StringVar(&o.color, "color", colorAuto, "colorize output: auto, always or never")
	f.BoolVarP(&o.interactive, "interactive", "i", false, "open the interactive viewer")
	f.BoolVar(&o.watch, "watch", false, "reload when an input file changes (implies --interactive)")
	f.BoolVar(&o.exitCode, "exit-code", false, "exit with status 1 when the texts differ")
	f.StringVar(&o.logFile, "log-file", "", "write debug logs to `PATH` (or set "+logging.EnvVar+")")
	f.StringVar(&o.configPath, "config", "", "config file `PATH` (default $XDG_CONFIG_HOME/sbsdiff/config.toml)")
	return cmd
}

func run(cmd *cobra.Command, o *options, args []string) error {
	closer, err := logging.Setup(logging.Path(o.logFile), slog.LevelDebug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, cfg, o)
	if err != nil {
		return err
	}

	spec, err := buildSpec(o, args)
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	loader, err := input.NewLoader(spec, cwd, nil, cmd.InOrStdin())
	if err != nil {
		return err
	}
	slog.Info("starting", "left", spec.Left, "right", spec.Right, "rev", spec.Rev, "format", o.format, "interactive", o.interactive || o.watch)

	if o.interactive || o.watch {
		return runInteractive(cmd, loader, spec, s, o.watch)
	}

	pair, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	res := diffview.Compute(pair.Left, pair.Right,
		diffview.WithCollapseThreshold(s.threshold),
		diffview.WithContextLines(s.context),
		diffview.WithCompact(s.compact),
	)
	slog.Debug("diff computed", "mode", res.Mode.String(), "rows", len(res.Rows))

	if err := writeOutput(cmd.OutOrStdout(), o.format, pair, res, s, syntaxPath(spec)); err != nil {
		return err
	}
	if o.exitCode && !res.Stats.Identical() {
		return errDifferent
	}
	return nil
}

func loadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return config.AppConfig{}, fmt.Errorf("config: %w", err)
		}
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return config.AppConfig{}, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, used, err := config.Load()
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("%s: %w", used, err)
	}
	return cfg, nil
}

func buildSpec(o *options, args []string) (input.Spec, error) {
	if o.gitRev != "" {
		if len(args) != 1 {
			return input.Spec{}, errors.New("--git takes exactly one PATH")
		}
		return input.Spec{Rev: o.gitRev, Right: args[0]}, nil
	}
	if len(args) != 2 {
		return input.Spec{}, errors.New("need LEFT and RIGHT")
	}
	return input.Spec{Left: args[0], Right: args[1], Literal: o.text}, nil
}

// syntaxPath is the file name used to pick a highlighter.
func syntaxPath(spec input.Spec) string {
	if spec.Literal || spec.Right == "-" {
		return ""
	}
	return spec.Right
}

func runInteractive(cmd *cobra.Command, loader *input.Loader, spec input.Spec, s settings, watchFiles bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var changes app.Changes
	if watchFiles {
		paths := loader.WatchPaths()
		if len(paths) == 0 {
			return errors.New("--watch needs at least one file input")
		}
		w, err := watch.New(paths)
		if err != nil {
			return err
		}
		defer w.Close()
		changes = w
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if spec.Left == "-" || spec.Right == "-" {
		// Read the piped text now and take keys from the terminal instead.
		if _, err := loader.Load(ctx); err != nil {
			return err
		}
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	session := diffview.NewSession(s.threshold, s.context, s.compact)
	model := app.NewModel(session, loader, changes, app.Options{
		Path:         syntaxPath(spec),
		Color:        s.colorFor(os.Stdout),
		TabWidth:     s.tabWidth,
		PatchContext: s.patchContext,
	})
	if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
