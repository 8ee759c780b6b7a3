// Package input loads the two texts to compare.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"sbsdiff/internal/git"
)

const stdinName = "-"

// Pair is a loaded left/right text with display names for both sides.
type Pair struct {
	Left, Right         string
	LeftName, RightName string
}

// Spec describes where the two texts come from.
//
//   - Literal: Left and Right are the texts themselves.
//   - Rev set: Right is a path; the left text is that path at Rev.
//   - Otherwise: Left and Right are file paths, "-" meaning stdin.
type Spec struct {
	Left, Right string
	Literal     bool
	Rev         string
}

func (s Spec) Validate() error {
	if s.Literal && s.Rev != "" {
		return errors.New("literal texts cannot be combined with a git revision")
	}
	if !s.Literal && s.Left == stdinName && s.Right == stdinName {
		return errors.New("stdin can only be used for one side")
	}
	if s.Rev != "" && s.Right == stdinName {
		return errors.New("a git revision needs a file path, not stdin")
	}
	return nil
}

// Loader reads a Spec. Stdin is consumed once and replayed on every later
// Load, so reloading is always safe.
type Loader struct {
	spec  Spec
	cwd   string
	git   git.RevisionReader
	stdin io.Reader

	once      sync.Once
	stdinData []byte
	stdinErr  error
}

func NewLoader(spec Spec, cwd string, revisions git.RevisionReader, stdin io.Reader) (*Loader, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if revisions == nil {
		revisions = git.NewRevisionReader()
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Loader{spec: spec, cwd: cwd, git: revisions, stdin: stdin}, nil
}

func (l *Loader) Load(ctx context.Context) (Pair, error) {
	s := l.spec
	if s.Literal {
		return Pair{Left: s.Left, Right: s.Right, LeftName: "left", RightName: "right"}, nil
	}

	var p Pair
	var err error
	if s.Rev != "" {
		p.Left, err = l.git.ReadFile(ctx, l.cwd, s.Rev, s.Right)
		if err != nil {
			return Pair{}, err
		}
		p.LeftName = s.Rev + ":" + s.Right
	} else {
		p.Left, err = l.read(s.Left)
		if err != nil {
			return Pair{}, err
		}
		p.LeftName = s.Left
	}

	p.Right, err = l.read(s.Right)
	if err != nil {
		return Pair{}, err
	}
	p.RightName = s.Right
	slog.Debug("loaded inputs", "left", p.LeftName, "right", p.RightName, "left_bytes", len(p.Left), "right_bytes", len(p.Right))
	return p, nil
}

// WatchPaths returns the files whose changes should trigger a reload.
func (l *Loader) WatchPaths() []string {
	s := l.spec
	if s.Literal {
		return nil
	}
	var paths []string
	if s.Rev == "" && s.Left != stdinName {
		paths = append(paths, s.Left)
	}
	if s.Right != stdinName {
		paths = append(paths, s.Right)
	}
	return paths
}

func (l *Loader) read(name string) (string, error) {
	var data []byte
	if name == stdinName {
		l.once.Do(func() {
			l.stdinData, l.stdinErr = io.ReadAll(l.stdin)
		})
		if l.stdinErr != nil {
			return "", fmt.Errorf("read stdin: %w", l.stdinErr)
		}
		data = l.stdinData
	} else {
		b, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		data = b
	}

	out, err := decompress(data)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(out), nil
}
