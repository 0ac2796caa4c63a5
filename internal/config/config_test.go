package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return "OFFICER_WIZARD_ENV_FILE=" + filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{
		noEnvFile(t),
		"OFFICER_WIZARD_RANKS_URL=http://env.test/ranks",
		"OFFICER_WIZARD_UNITS_URL=http://env.test/units",
		"OFFICER_WIZARD_TIMEOUT=3s",
	}
	cfg, err := LoadArgs([]string{"--ranks-url", "http://flag.test/ranks", "--departments", "d.yaml", "--department", "7"}, environ)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.RanksURL != "http://flag.test/ranks" {
		t.Fatalf("expected flag to win, got %q", cfg.App.RanksURL)
	}
	if cfg.App.UnitsURL != "http://env.test/units" {
		t.Fatalf("expected env units url, got %q", cfg.App.UnitsURL)
	}
	if cfg.App.Timeout != 3*time.Second {
		t.Fatalf("expected env timeout, got %s", cfg.App.Timeout)
	}
	if cfg.App.Department != "7" || cfg.Flags["department"] != "7" {
		t.Fatalf("unexpected department %q", cfg.App.Department)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{noEnvFile(t)})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.App.Timeout)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error without endpoints")
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"--width", "-1"}, []string{noEnvFile(t)}); err == nil {
		t.Fatalf("expected error for negative width")
	}
}

func TestDotenvFillsUnsetValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.env")
	contents := "OFFICER_WIZARD_RANKS_URL=http://dotenv.test/ranks\nOFFICER_WIZARD_UNITS_URL=http://dotenv.test/units\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	environ := []string{"OFFICER_WIZARD_UNITS_URL=http://env.test/units"}
	cfg, err := LoadArgs([]string{"--env-file=" + path}, environ)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.RanksURL != "http://dotenv.test/ranks" {
		t.Fatalf("expected dotenv ranks url, got %q", cfg.App.RanksURL)
	}
	if cfg.App.UnitsURL != "http://env.test/units" {
		t.Fatalf("expected environment to beat dotenv, got %q", cfg.App.UnitsURL)
	}
	if cfg.EnvFile != path {
		t.Fatalf("expected env file %q, got %q", path, cfg.EnvFile)
	}
}

func TestValidateEndpoints(t *testing.T) {
	cfg := Config{}
	cfg.App.RanksURL = "ftp://x/ranks"
	cfg.App.UnitsURL = "http://x/units"
	cfg.App.DepartmentsPath = "d.yaml"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "ranks-url") {
		t.Fatalf("expected ranks-url scheme error, got %v", err)
	}
	cfg.App.RanksURL = "http://x/ranks"
	cfg.App.DepartmentsPath = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected departments error")
	}
}

func TestLookupArg(t *testing.T) {
	if v, ok := lookupArg([]string{"-env-file", "a.env"}, "env-file"); !ok || v != "a.env" {
		t.Fatalf("expected a.env, got %q", v)
	}
	if _, ok := lookupArg([]string{"--", "--env-file", "b.env"}, "env-file"); ok {
		t.Fatalf("expected lookup to stop at --")
	}
}
