// Package clipboard copies text through the platform's clipboard tool.
package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"runtime"

	"sbsdiff/internal/util"
)

var ErrUnavailable = errors.New("no clipboard tool found")

type command struct {
	name string
	args []string
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func candidates(goos string) []command {
	switch goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{{name: "clip"}}
	default:
		return []command{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

func pick(goos string) (command, bool) {
	for _, c := range candidates(goos) {
		if _, err := lookPath(c.name); err == nil {
			return c, true
		}
	}
	return command{}, false
}

func CopyText(ctx context.Context, text string) error {
	c, ok := pick(runtime.GOOS)
	if !ok {
		return ErrUnavailable
	}
	_, err := util.RunWithStdin(ctx, "", text, c.name, c.args...)
	return err
}
