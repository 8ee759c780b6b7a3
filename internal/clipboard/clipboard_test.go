package clipboard

import (
	"errors"
	"os/exec"
	"testing"
)

func withTools(t *testing.T, available ...string) {
	t.Helper()
	prev := lookPath
	t.Cleanup(func() { lookPath = prev })
	lookPath = func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestPickPrefersFirstAvailableLinuxTool(t *testing.T) {
	withTools(t, "xsel", "xclip")
	c, ok := pick("linux")
	if !ok {
		t.Fatalf("expected a tool")
	}
	if c.name != "xclip" {
		t.Fatalf("pick()=%q want xclip", c.name)
	}
	if len(c.args) != 2 || c.args[1] != "clipboard" {
		t.Fatalf("unexpected xclip args %v", c.args)
	}
}

func TestPickPlatformTools(t *testing.T) {
	withTools(t, "pbcopy", "clip")
	if c, _ := pick("darwin"); c.name != "pbcopy" {
		t.Fatalf("darwin pick=%q", c.name)
	}
	if c, _ := pick("windows"); c.name != "clip" {
		t.Fatalf("windows pick=%q", c.name)
	}
}

func TestCopyTextWithoutToolFails(t *testing.T) {
	withTools(t)
	if err := CopyText(t.Context(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("CopyText() error = %v, want ErrUnavailable", err)
	}
}
