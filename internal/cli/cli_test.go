package cli

import (
	"io"
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"dot,json,svg", []string{"dot", "json", "svg"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		suffix string
		want   string
	}{
		{"explicit output wins", "out.json", "data.json", ".graph.json", "out.json"},
		{"derived from input", "", "data.json", ".graph.json", "data.graph.json"},
		{"input without extension", "", "data", ".layout.json", "data.layout.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.suffix); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input ext", "", "records.json", "records"},
		{"output with format ext stripped", "graph.svg", "records.json", "graph"},
		{"output without format ext kept", "exports/graph", "records.json", "exports/graph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderBasePath(tt.output, tt.input); got != tt.want {
				t.Errorf("renderBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	want := filepath.Join(dir, appName)
	if got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"build", "layout", "render", "view", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
