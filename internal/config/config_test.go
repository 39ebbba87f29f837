package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"shiftcal/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	def := config.Default()
	if *cfg != *def {
		t.Errorf("Load on missing file = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiftcal.yaml")
	partial := "organiser: Admo\ndefault_start: \"22:00\"\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Organiser != "Admo" {
		t.Errorf("organiser = %q", cfg.Organiser)
	}
	if cfg.DefaultStart != "22:00" {
		t.Errorf("default_start = %q", cfg.DefaultStart)
	}
	if cfg.DefaultEnd != "20:00" || cfg.Summary != "long day" || cfg.ProdID == "" {
		t.Errorf("missing fields not defaulted: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiftcal.yaml")
	if err := os.WriteFile(path, []byte("organiser: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shiftcal.yaml")
	cfg := config.Default()
	cfg.Organiser = "Admo"
	cfg.Output = "outputs/test"

	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip changed config: %+v vs %+v", loaded, cfg)
	}
}

func TestParseClock(t *testing.T) {
	if _, err := config.ParseClock("07:00"); err != nil {
		t.Errorf("valid clock rejected: %v", err)
	}
	for _, bad := range []string{"", "7am", "25:00", "07:60"} {
		if _, err := config.ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) accepted", bad)
		}
	}
}
