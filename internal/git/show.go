package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"sbsdiff/internal/util"
)

// RevisionReader reads file contents as recorded at a git revision.
type RevisionReader interface {
	ReadFile(ctx context.Context, cwd, rev, path string) (string, error)
}

type revisionReader struct{}

func NewRevisionReader() RevisionReader {
	return revisionReader{}
}

func (revisionReader) ReadFile(ctx context.Context, cwd, rev, path string) (string, error) {
	if filepath.IsAbs(path) {
		root, err := DiscoverRepoRoot(ctx, cwd)
		if err != nil {
			return "", err
		}
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			path = resolved
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", fmt.Errorf("resolve %s against %s: %w", path, root, err)
		}
		return util.Run(ctx, root, "git", "show", objectName(rev, rel))
	}
	return util.Run(ctx, cwd, "git", "show", objectName(rev, path))
}

// objectName builds a "rev:path" object name. Relative paths get a "./"
// prefix so git resolves them against the working directory instead of the
// repository root.
func objectName(rev, path string) string {
	p := filepath.ToSlash(filepath.Clean(path))
	if !strings.HasPrefix(p, "./") && !strings.HasPrefix(p, "../") {
		p = "./" + p
	}
	return rev + ":" + p
}

func DiscoverRepoRoot(ctx context.Context, cwd string) (string, error) {
	out, err := util.Run(ctx, cwd, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
