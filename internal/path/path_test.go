package path

import (
	"path/filepath"
	"testing"
)

func TestRelative(t *testing.T) {
	root := filepath.FromSlash("/work/project")

	tests := []struct {
		input string
		want  string
	}{
		{"src/main.go", "src/main.go"},
		{"./src/main.go", "src/main.go"},
		{filepath.FromSlash("/work/project/docs/readme.md"), "docs/readme.md"},
		{".", "project"},
		{"", "project"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Relative(root, tt.input); got != tt.want {
				t.Errorf("Relative(%q, %q) = %q, want %q", root, tt.input, got, tt.want)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	root := filepath.FromSlash("/work/app")

	tests := []struct {
		p    string
		want bool
	}{
		{"/work/app", true},
		{"/work/app/src", true},
		{"/work/app/src/deep/file.go", true},
		{"/work/application", false},
		{"/work", false},
		{"/other", false},
		{"/work/app/../secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.p, func(t *testing.T) {
			p := filepath.Clean(filepath.FromSlash(tt.p))
			if got := Within(root, p); got != tt.want {
				t.Errorf("Within(%q, %q) = %v, want %v", root, p, got, tt.want)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	base := filepath.FromSlash("/work")
	if got, want := Abs(base, "app/src"), filepath.FromSlash("/work/app/src"); got != want {
		t.Errorf("Abs relative = %q, want %q", got, want)
	}
	if got, want := Abs(base, filepath.FromSlash("/etc/../tmp")), filepath.FromSlash("/tmp"); got != want {
		t.Errorf("Abs absolute = %q, want %q", got, want)
	}
}
