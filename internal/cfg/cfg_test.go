package cfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"multiselect/internal/cfg"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	got, err := cfg.Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	want := cfg.Default()
	if got != want {
		t.Fatalf("Load(missing) = %+v; want defaults %+v", got, want)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multiselect.yml")
	content := "separator: \":\"\nflash_start_ms: 100\nhelper_path: /usr/bin/xsel-helper\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := cfg.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Separator != ":" {
		t.Fatalf("Separator = %q; want %q", got.Separator, ":")
	}
	if got.FlashStartMs != 100 {
		t.Fatalf("FlashStartMs = %d; want 100", got.FlashStartMs)
	}
	if got.HelperPath != "/usr/bin/xsel-helper" {
		t.Fatalf("HelperPath = %q; want /usr/bin/xsel-helper", got.HelperPath)
	}
	// Fields absent from the file keep their Default() values.
	if got.FlashChangeMs != cfg.Default().FlashChangeMs {
		t.Fatalf("FlashChangeMs = %d; want default %d", got.FlashChangeMs, cfg.Default().FlashChangeMs)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multiselect.yml")
	if err := os.WriteFile(path, []byte("not: [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.Load(path); err == nil {
		t.Fatal("expected error parsing malformed YAML")
	}
}
