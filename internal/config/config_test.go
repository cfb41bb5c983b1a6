package config

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/saruga/mustuse/internal/diagnostic"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "mustuse.json", `{"disabledRules": ["discarded_must_use"]}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfg.DisabledRules) != 1 || cfg.DisabledRules[0] != "discarded_must_use" {
		t.Errorf("DisabledRules = %v", cfg.DisabledRules)
	}
}

func TestLoadFileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "mustuse.json", `{not json`)

	if _, err := LoadFile(path); err == nil {
		t.Error("invalid JSON should fail")
	}
}

func TestLoadSearchesParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".mustuserc", `{"disabledRules": ["reserved_must_use"]}`)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("config in ancestor directory should be found")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found config at %q, want one in %q", path, root)
	}
}

func TestLoadNoConfig(t *testing.T) {
	cfg, path, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != nil || path != "" {
		t.Errorf("expected no config, got %v at %q", cfg, path)
	}
}

func TestMergeExtendsConfig(t *testing.T) {
	cfg := &Config{DisabledRules: []string{diagnostic.RuleDiscardedMustUse}}
	rules := cfg.Merge([]string{diagnostic.RuleReservedMustUse, diagnostic.RuleDiscardedMustUse})

	want := []string{diagnostic.RuleDiscardedMustUse, diagnostic.RuleReservedMustUse}
	if len(rules) != len(want) {
		t.Fatalf("Merge = %v, want %v", rules, want)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Errorf("Merge[%d] = %q, want %q", i, rules[i], want[i])
		}
	}
}
