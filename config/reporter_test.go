package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReportClose_WritesArchive(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(tmpDir, "doc.xml")
	if err := os.WriteFile(src, []byte("<doc/>"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	dir := filepath.Join(tmpDir, "assets")
	if err := os.MkdirAll(filepath.Join(dir, "css"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "css", "a.css"), []byte("p{}"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	r.Store("source.xml", src)
	r.Store("assets", dir)
	r.Store("missing.txt", filepath.Join(tmpDir, "nope.txt"))
	r.StoreData("tree.txt", []byte("<doc>"))

	if !r.Has("tree.txt") || r.Has("other") {
		t.Error("Has() reports wrong entries")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	files := readArchive(t, conf.Destination)
	want := map[string]string{
		"source.xml":       "<doc/>",
		"assets/css/a.css": "p{}",
		"tree.txt":         "<doc>",
	}
	for name, content := range want {
		if got, ok := files[name]; !ok {
			t.Errorf("archive is missing %s", name)
		} else if got != content {
			t.Errorf("%s = %q, want %q", name, got, content)
		}
	}
	if _, ok := files["missing.txt"]; ok {
		t.Error("absent file should not be archived")
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"source.xml", "assets", "missing.txt", "tree.txt"} {
		if !strings.Contains(manifest, name) {
			t.Errorf("MANIFEST does not mention %s:\n%s", name, manifest)
		}
	}
}

func TestReportStore_SamePathTwice(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/a")
	r.Store("a", "/tmp/a")
	if len(r.entries) != 1 {
		t.Errorf("entries = %d, want 1", len(r.entries))
	}
}

func TestReportStore_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/a")

	defer func() {
		if recover() == nil {
			t.Error("expected panic when overwriting entry with different path")
		}
	}()
	r.Store("a", "/tmp/b")
}

func TestReportStoreData_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("a", []byte("1"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic when overwriting data entry")
		}
	}()
	r.StoreData("a", []byte("2"))
}

func TestReport_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "/tmp/a")
	r.StoreData("b", nil)
	if r.Has("a") {
		t.Error("nil report should not have entries")
	}
	if r.Name() != "" {
		t.Errorf("Name() = %q, want empty", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestPrepareManifest_Empty(t *testing.T) {
	names, buf := prepareManifest(nil)
	if names != nil || buf.Len() != 0 {
		t.Errorf("prepareManifest(nil) = %v, %q", names, buf.String())
	}
}
