package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name    string
		commit  string
		date    string
		want    []string
		notWant []string
	}{
		{
			name:    "plain",
			want:    []string{"ghostc 1.2.3-rc.1\n", "go:     "},
			notWant: []string{"commit:", "built:"},
		},
		{
			name:   "with build info",
			commit: "abc123def456",
			date:   "2024-01-15T10:30:00Z",
			want:   []string{"commit: abc123def456\n", "built:  2024-01-15T10:30:00Z\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, "1.2.3-rc.1", tt.commit, tt.date)
			var buf bytes.Buffer
			if err := Write(&buf, false); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output has %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3+build.7", "nightly"}
	for _, v := range tests {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() with colors off = %q, want %q", got, v)
		}
	}
}

func BenchmarkColored(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Colored()
	}
}
