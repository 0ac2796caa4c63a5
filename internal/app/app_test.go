package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewModelLoadsDepartments(t *testing.T) {
	depts := writeFile(t, "departments.yaml", "- id: 7\n  name: Springfield PD\n")
	model, loader, err := NewModel(Config{
		RanksURL:        "http://x/ranks",
		UnitsURL:        "http://x/units",
		DepartmentsPath: depts,
		Department:      "7",
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	defer loader.Stop()
	if model == nil {
		t.Fatalf("expected model")
	}
}

func TestNewModelRejectsEmptyDirectory(t *testing.T) {
	depts := writeFile(t, "departments.yaml", "[]\n")
	if _, _, err := NewModel(Config{DepartmentsPath: depts}); err == nil {
		t.Fatalf("expected error for empty departments file")
	}
}

func TestNewModelRejectsBadInitialDepartment(t *testing.T) {
	depts := writeFile(t, "departments.yaml", "- id: 7\n")
	if _, _, err := NewModel(Config{DepartmentsPath: depts, Department: "seven"}); err == nil {
		t.Fatalf("expected error for non-numeric department")
	}
}

func TestNewModelRejectsUnlistedInitialDepartment(t *testing.T) {
	depts := writeFile(t, "departments.yaml", "- id: 7\n")
	_, _, err := NewModel(Config{DepartmentsPath: depts, Department: "42"})
	if err == nil {
		t.Fatalf("expected error for unlisted department")
	}
	if !strings.Contains(err.Error(), "42") {
		t.Fatalf("expected error to name the department, got %v", err)
	}
}

func TestLoadPatchImage(t *testing.T) {
	path := writeFile(t, "patches.txt", "|||\n")
	got, err := loadPatchImage(path)
	if err != nil || got != "|||" {
		t.Fatalf("expected file contents, got %q (%v)", got, err)
	}
	if got, _ := loadPatchImage("https://example.test/patches.png"); got != "https://example.test/patches.png" {
		t.Fatalf("expected url passed through, got %q", got)
	}
	missing := filepath.Join(t.TempDir(), "missing.png")
	if got, _ := loadPatchImage(missing); got != missing {
		t.Fatalf("expected missing path passed through, got %q", got)
	}
}
