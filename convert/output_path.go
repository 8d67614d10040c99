package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"hammock/config"
	"hammock/state"
)

const outputExt = ".html"

// buildOutputPath returns output file path for the document. src is the
// document path relative to the source (just a file name when single file
// was requested), its directory part is kept under dst. Name comes either
// from source file name or from user defined template which may also add
// subdirectories. Every path segment is cleaned and, if requested,
// transliterated.
func buildOutputPath(values Values, src, dst string, env *state.LocalEnv) string {
	outDir := filepath.Join(dst, filepath.Dir(src))

	if env.Cfg.Document.OutputNameTemplate != "" {
		if expanded := expandOutputNameTemplate(values, env); expanded != "" {
			return assemblePathWithSubdirs(outDir, expanded, env)
		}
		// fallback to default name if template expansion failed
	}
	return filepath.Join(outDir, cleanPathSegment(values.SourceFile, env)+outputExt)
}

func expandOutputNameTemplate(values Values, env *state.LocalEnv) string {
	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expanded)
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path.
func assemblePathWithSubdirs(outDir, expanded string, env *state.LocalEnv) string {
	segments := splitPath(expanded)
	if len(segments) == 0 {
		return outDir
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	name := strings.TrimSuffix(segments[len(segments)-1], outputExt)
	parts = append(parts, cleanPathSegment(name, env)+outputExt)
	return filepath.Join(parts...)
}

// splitPath breaks path into segments dropping empty ones and references to
// current and parent directories, so template could not escape destination.
func splitPath(path string) []string {
	segments := make([]string, 0, 8)
	for head, tail := filepath.Split(strings.TrimSuffix(path, string(os.PathSeparator))); tail != ""; head, tail = filepath.Split(head) {
		if tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return CleanFileName(segment)
}

// CleanFileName removes characters not allowed in file names.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if strings.ContainsRune(config.ForbiddenNameChars, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
