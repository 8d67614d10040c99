package convert

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"hammock/config"
	"hammock/state"
)

func setupTestEnvForOutputPath(t *testing.T, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	return &state.LocalEnv{
		Cfg: &config.Config{
			Document: config.DocumentConfig{
				FileNameTransliterate: transliterate,
				OutputNameTemplate:    template,
			},
		},
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}
}

func testValues() Values {
	return Values{
		Title:      "Device API",
		SourceFile: "api",
		SourceDir:  "reference",
		Chapters:   2,
		Sections:   1,
	}
}

func TestBuildOutputPath_Default(t *testing.T) {
	env := setupTestEnvForOutputPath(t, false, "")
	dst := filepath.Join("out", "site")

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single file", "api.xml", filepath.Join(dst, "api.html")},
		{"nested file", filepath.Join("reference", "api.xml"), filepath.Join(dst, "reference", "api.html")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildOutputPath(testValues(), tt.src, dst, env); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, "")
	values := testValues()
	values.SourceFile = "Справка API"

	got := buildOutputPath(values, "Справка API.xml", "out", env)
	if want := filepath.Join("out", "spravka-api.html"); got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"title", "{{ .Title }}", filepath.Join("out", "Device API.html")},
		{"sprig function", "{{ .Title | lower | replace \" \" \"-\" }}", filepath.Join("out", "device-api.html")},
		{"subdirectories", "{{ .SourceDir }}/{{ .Chapters }}-{{ .SourceFile }}", filepath.Join("out", "reference", "2-api.html")},
		{"extension is not doubled", "{{ .SourceFile }}.html", filepath.Join("out", "api.html")},
		{"parent references dropped", "../../{{ .SourceFile }}", filepath.Join("out", "api.html")},
		{"broken template falls back", "{{ .Title", filepath.Join("out", "api.html")},
		{"unknown field falls back", "{{ .Author }}", filepath.Join("out", "api.html")},
		{"empty expansion falls back", "{{ if false }}x{{ end }}", filepath.Join("out", "api.html")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, false, tt.template)
			if got := buildOutputPath(testValues(), "api.xml", "out", env); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		path string
		want []string
	}{
		{"file", []string{"file"}},
		{strings.Join([]string{"a", "b", "file"}, sep), []string{"a", "b", "file"}},
		{strings.Join([]string{"a", "b", ""}, sep), []string{"a", "b"}},
		{strings.Join([]string{".", "a", "..", "file"}, sep), []string{"a", "file"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := splitPath(tt.path); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCleanFileName(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		in   string
		want string
	}{
		{"api", "api"},
		{"a" + sep + "b", "ab"},
		{"..hidden", "hidden"},
		{"", "_bad_file_name_"},
		{"...", "_bad_file_name_"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
