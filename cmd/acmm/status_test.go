package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Shaders patch", statusError, "not installed", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Shaders patch:", "[ERROR] not installed")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Shaders patch", statusOK, "v0.2.3", true)
	if !strings.HasPrefix(got, "\x1b[") {
		t.Fatalf("expected ANSI prefix, got %q", got)
	}
	if !strings.Contains(got, "[OK] v0.2.3") {
		t.Fatalf("expected status text, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestResolveTrashIDRequiresInput(t *testing.T) {
	if _, err := resolveTrashID(nil, "  "); err == nil {
		t.Fatal("expected error for empty id")
	}
}
