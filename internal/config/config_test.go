package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadMerge(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.yml", `
volume:
  base_weekday: 200
  base_weekend: 80
calendar:
  incidents:
    premium_wait_peak_days: ["Mon", "Fri"]
geo:
  region:
    ZH: 0.5
    BE: 0.5
`)
	overrides := writeFile(t, dir, "overrides.yml", `
volume:
  base_weekday: 300
calendar:
  incidents:
    premium_wait_peak_days: ["Tue"]
`)

	cfg, err := Load(base, overrides)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.Int("volume.base_weekday", 0); got != 300 {
		t.Errorf("overridden scalar = %d, want 300", got)
	}
	if got := cfg.Int("volume.base_weekend", 0); got != 80 {
		t.Errorf("untouched sibling = %d, want 80", got)
	}
	// Lists replace wholesale, they do not merge element-wise.
	if got := cfg.Strings("calendar.incidents.premium_wait_peak_days", nil); len(got) != 1 || got[0] != "Tue" {
		t.Errorf("replaced list = %v, want [Tue]", got)
	}
	if got := cfg.Table("geo.region", nil); len(got) != 2 {
		t.Errorf("nested map from base = %v, want 2 entries", got)
	}
}

func TestLoadMissingOverridesIsFine(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.yml", "volume:\n  base_weekday: 150\n")

	cfg, err := Load(base, filepath.Join(dir, "nope.yml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.Int("volume.base_weekday", 0); got != 150 {
		t.Errorf("base value = %d, want 150", got)
	}
}

func TestLoadMissingBaseFails(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "nope.yml"), filepath.Join(dir, "also-nope.yml")); err == nil {
		t.Error("Load() with missing base file succeeded, want error")
	}
}

func TestAccessorDefaults(t *testing.T) {
	cfg := New(map[string]any{
		"a": map[string]any{"b": 1.5, "c": "x", "d": true, "n": 7},
	})

	if got := cfg.Float("a.b", 0); got != 1.5 {
		t.Errorf("Float() = %v, want 1.5", got)
	}
	if got := cfg.Float("a.missing", 9.9); got != 9.9 {
		t.Errorf("Float() default = %v, want 9.9", got)
	}
	if got := cfg.Int("a.n", 0); got != 7 {
		t.Errorf("Int() = %d, want 7", got)
	}
	if got := cfg.String("a.c", ""); got != "x" {
		t.Errorf("String() = %q, want x", got)
	}
	if got := cfg.Bool("a.d", false); !got {
		t.Error("Bool() = false, want true")
	}
	if got := cfg.Bool("a.missing.deep", true); !got {
		t.Error("Bool() default = false, want true")
	}
	// A path through a scalar is also a miss.
	if got := cfg.Int("a.c.nested", 3); got != 3 {
		t.Errorf("Int() through scalar = %d, want default 3", got)
	}
}

func TestIntTable(t *testing.T) {
	cfg := New(map[string]any{
		"probs": map[string]any{"0": 0.7, "1": 0.2, "2": 0.1},
	})
	got := cfg.IntTable("probs", nil)
	if len(got) != 3 || got[0] != 0.7 || got[2] != 0.1 {
		t.Errorf("IntTable() = %v", got)
	}

	def := map[int]float64{0: 1.0}
	if got := cfg.IntTable("missing", def); len(got) != 1 || got[0] != 1.0 {
		t.Errorf("IntTable() default = %v, want %v", got, def)
	}
}

func TestSet(t *testing.T) {
	cfg := New(map[string]any{
		"calendar": map[string]any{"incidents": map[string]any{"outages_count": 2}},
	})

	cfg.Set("calendar.incidents.outages_count", 5)
	if got := cfg.Int("calendar.incidents.outages_count", 0); got != 5 {
		t.Errorf("Set existing = %d, want 5", got)
	}

	cfg.Set("brand.new.path", "v")
	if got := cfg.String("brand.new.path", ""); got != "v" {
		t.Errorf("Set new path = %q, want v", got)
	}
}

func TestJSONRoundTrips(t *testing.T) {
	cfg := New(map[string]any{"k": map[string]any{"v": 1}})
	data, err := cfg.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if len(data) == 0 {
		t.Error("JSON() returned empty payload")
	}
}
