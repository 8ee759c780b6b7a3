package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sbsdiff/internal/config"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// settings are the config values after command line overrides.
type settings struct {
	threshold    int
	context      int
	patchContext int
	tabWidth     int
	compact      bool
	color        string
	width        int
}

func resolveSettings(cmd *cobra.Command, cfg config.AppConfig, o *options) (settings, error) {
	s := settings{
		threshold:    cfg.CollapseThreshold,
		context:      cfg.ContextLines,
		patchContext: cfg.PatchContext,
		tabWidth:     cfg.TabWidth,
		compact:      cfg.CompactEnabled(),
		color:        colorAuto,
		width:        o.width,
	}
	if cfg.Color != nil {
		s.color = colorNever
		if *cfg.Color {
			s.color = colorAlways
		}
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		s.threshold = o.threshold
	}
	if flags.Changed("context") {
		s.context = o.context
	}
	if flags.Changed("patch-context") {
		s.patchContext = o.patchContext
	}
	if flags.Changed("tab-width") {
		s.tabWidth = o.tabWidth
	}
	if flags.Changed("no-compact") {
		s.compact = !o.noCompact
	}
	if flags.Changed("color") {
		s.color = o.color
	}

	switch {
	case s.threshold < 1:
		return settings{}, fmt.Errorf("--threshold must be at least 1, got %d", s.threshold)
	case s.context < 0:
		return settings{}, fmt.Errorf("--context cannot be negative, got %d", s.context)
	case s.patchContext < 0:
		return settings{}, fmt.Errorf("--patch-context cannot be negative, got %d", s.patchContext)
	case s.tabWidth < 1:
		return settings{}, fmt.Errorf("--tab-width must be at least 1, got %d", s.tabWidth)
	case s.width < 0:
		return settings{}, fmt.Errorf("--width cannot be negative, got %d", s.width)
	}
	switch s.color {
	case colorAuto, colorAlways, colorNever:
	default:
		return settings{}, fmt.Errorf("unknown --color %q (want auto, always or never)", s.color)
	}
	return s, nil
}

// colorFor decides whether output to w is colored. When it is, lipgloss is
// told so explicitly since it only inspects stdout.
func (s settings) colorFor(w io.Writer) bool {
	on := false
	switch s.color {
	case colorAlways:
		on = true
	case colorAuto:
		on = isTerminal(w) && os.Getenv("NO_COLOR") == ""
	}
	if on {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
	return on
}

// widthFor returns the configured width, the terminal width, or 120 when w is
// not a terminal.
func (s settings) widthFor(w io.Writer) int {
	if s.width > 0 {
		return s.width
	}
	if f, ok := w.(*os.File); ok && isTerminal(w) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return 120
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
