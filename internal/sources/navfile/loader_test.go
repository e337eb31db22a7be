package navfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "navs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeFile(t, `---
groups:
  - name: tools
    displayName: Tools
    priority: 2
    children: [editors]
  - name: editors
    displayName: Editors
links:
  - name: vim
    displayName: Vim
    url: https://www.vim.org
    groupName: editors
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(file.Groups) != 2 || len(file.Links) != 1 {
		t.Fatalf("Load() = %d groups and %d links, want 2 and 1", len(file.Groups), len(file.Links))
	}
	if file.Groups[0].Priority == nil || *file.Groups[0].Priority != 2 {
		t.Errorf("tools priority = %v, want 2", file.Groups[0].Priority)
	}
	if file.Groups[1].Priority != nil {
		t.Errorf("editors priority = %v, want nil", *file.Groups[1].Priority)
	}
	if file.Links[0].GroupName != "editors" {
		t.Errorf("vim group = %q, want editors", file.Links[0].GroupName)
	}
}

func TestLoaderLoadWithEnvReferences(t *testing.T) {
	t.Setenv("NAVS_TEST_GRAFANA_URL", "https://grafana.example.com")
	path := writeFile(t, `links:
  - name: grafana
    displayName: Grafana
    url: ${NAVS_TEST_GRAFANA_URL}
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := file.Links[0].URL; got != "https://grafana.example.com" {
		t.Errorf("url = %q, want the expanded value", got)
	}
}

func TestLoaderLoadEmptyFile(t *testing.T) {
	file, err := NewLoader(writeFile(t, "")).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(file.Groups) != 0 || len(file.Links) != 0 {
		t.Errorf("Load() = %+v, want empty", file)
	}
}

func TestLoaderLoadUnknownKey(t *testing.T) {
	path := writeFile(t, `links:
  - name: vim
    displayName: Vim
    href: https://www.vim.org
`)
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() with an unknown key should return error")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/navs.yaml")
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestExpandEnv(t *testing.T) {
	env := map[string]string{"HOST": "nas.lan", "EMPTY": ""}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single reference", input: "url: https://${HOST}/", expected: "url: https://nas.lan/"},
		{name: "unset variable", input: "url: ${MISSING}", expected: "url: "},
		{name: "empty variable", input: "x${EMPTY}y", expected: "xy"},
		{name: "bare dollar untouched", input: "q: $HOST and $1", expected: "q: $HOST and $1"},
		{name: "no references", input: "plain text", expected: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnv([]byte(tt.input), lookup)
			if string(result) != tt.expected {
				t.Errorf("expandEnv() = %q, want %q", string(result), tt.expected)
			}
		})
	}
}
