package personality

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve_OverrideWins(t *testing.T) {
	got := Resolve("You are a pirate.")
	if got != "You are a pirate." {
		t.Errorf("expected override to win, got %q", got)
	}
}

func TestResolve_DefaultWhenEmpty(t *testing.T) {
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	got := Resolve("  ")
	if !strings.Contains(got, "Dr Flex") {
		t.Errorf("expected built-in default, got %q", got)
	}
}

func TestReadFromDisk_FindsInParent(t *testing.T) {
	tmp := t.TempDir()
	child := filepath.Join(tmp, "nested", "deeper")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, FileName), []byte("custom prompt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(child); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	got, err := ReadFromDisk()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "custom prompt" {
		t.Errorf("expected trimmed file contents, got %q", got)
	}
}
