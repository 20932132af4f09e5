package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"ghostc/internal/project"
)

func TestWriteGraph(t *testing.T) {
	idx := project.NewIndex("demo", "main", []project.ModuleEntry{
		{Name: "main", Imports: []string{"util"}, Functions: []string{"main"}, ContentHash: project.Digest{1}},
		{Name: "util", Functions: []string{"f", "g"}, Externs: []string{"puts"}, ContentHash: project.Digest{2}},
	})
	var buf bytes.Buffer
	if err := writeGraph(&buf, idx); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"project demo (entry main)\n",
		"batch 1: util\nbatch 2: main\n",
		"fns=2 externs=1\n",
		"imports=util\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cycles:") || strings.Contains(out, "last build") {
		t.Errorf("unexpected sections:\n%s", out)
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes must win over TTY detection")
	}
}

func TestRunClean(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.gh")
	if err := os.WriteFile(entry, []byte("main : fn() void\nmain = fn() { 1 }\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "target", "debug"), 0o755); err != nil {
		t.Fatal(err)
	}
	cmd := &cobra.Command{Use: "ghostc"}
	cmd.PersistentFlags().String("entry", "", "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := runClean(cmd, []string{entry}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "removed target\n" {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "target")); !os.IsNotExist(err) {
		t.Errorf("target still exists: %v", err)
	}
	out.Reset()
	if err := runClean(cmd, []string{entry}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "nothing to clean\n" {
		t.Errorf("second run output = %q", out.String())
	}
}
