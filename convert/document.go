package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"hammock/config"
	"hammock/page"
	"hammock/render"
	"hammock/state"
	"hammock/toc"
	"hammock/tree"
)

// passThrough is used when input has been already converted to UTF-8 and
// encoding from XML declaration must not be applied again.
func passThrough(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// decodeInput selects reader and charset handling for the document. BOM
// wins, then forced code page, then XML declaration.
func decodeInput(r io.Reader, enc srcEncoding, env *state.LocalEnv) (io.Reader, tree.CharsetReader) {
	switch {
	case enc != encUnknown:
		return selectReader(r, enc), passThrough
	case env.CodePage != nil:
		return env.CodePage.NewDecoder().Reader(r), passThrough
	default:
		return r, nil
	}
}

// processDocument renders single document. "src" is the document path
// relative to the original source (base file name when file was specified
// directly), "dst" is the destination directory.
func processDocument(ctx context.Context, r io.Reader, enc srcEncoding, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	var outputName string

	log.Info("Rendering starting", zap.String("from", src), zap.Stringer("encoding", enc))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else if rerr == nil {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	decoded, cr := decodeInput(r, enc, env)
	data, err := io.ReadAll(decoded)
	if err != nil {
		return fmt.Errorf("unable to read source (%s): %w", src, err)
	}
	storeReport(env, src, "source.xml", data)

	root, err := tree.Parse(bytes.NewReader(data), cr)
	if err != nil {
		return fmt.Errorf("unable to parse source (%s): %w", src, err)
	}
	storeReport(env, src, "tree.txt", []byte(root.String()))

	doc := &env.Cfg.Document

	table, err := toc.Build(root, toc.WithTrimKeywords(doc.Autolinks.TrimKeywords), toc.WithLogger(log))
	if err != nil {
		return fmt.Errorf("unable to build table of contents (%s): %w", src, err)
	}

	opts := []render.Option{
		render.WithLogger(log),
		render.WithStylesheet(doc.Stylesheet),
		render.WithTOCTitle(doc.TOCTitle),
		render.WithScrollScript(doc.ScrollScript),
	}
	if doc.Highlight.Enable {
		h, err := render.NewHighlighter(doc.Highlight.Style)
		if err != nil {
			return err
		}
		opts = append(opts, render.WithHighlighter(h))
	}

	rnd := render.New(table, opts...)
	slots, err := rnd.Document(root)
	if err != nil {
		return fmt.Errorf("unable to render document (%s): %w", src, err)
	}
	env.Tally.Warnings += len(rnd.Warnings())

	out, missing := page.Apply(env.Template, slots)
	if len(missing) > 0 {
		switch doc.MissingPlaceholder {
		case config.PlaceholderPolicyFail:
			return &MissingPlaceholderError{Template: env.TemplateName, Missing: missing}
		case config.PlaceholderPolicyWarn:
			for _, p := range missing {
				log.Warn("Page template has no placeholder, content dropped", zap.String("template", env.TemplateName), zap.String("placeholder", p.Marker()))
			}
		}
	}

	outputName = buildOutputPath(buildValues(config.OutputNameTemplateFieldName, root, table, src), src, dst, env)
	if err := writeOutput(outputName, []byte(out)); err != nil {
		return err
	}
	env.Tally.Rendered++

	if env.Rpt != nil {
		if name := reportName(src, "result.html"); !env.Rpt.Has(name) {
			env.Rpt.Store(name, outputName)
		}
	}
	return nil
}

func reportName(src, name string) string {
	return path.Join("documents", filepath.ToSlash(src), name)
}

func storeReport(env *state.LocalEnv, src, name string, data []byte) {
	if env.Rpt == nil {
		return
	}
	if name = reportName(src, name); !env.Rpt.Has(name) {
		env.Rpt.StoreData(name, data)
	}
}

// writeOutput stores data next to its final destination and renames it in
// place, so there is never partially written output.
func writeOutput(name string, data []byte) (err error) {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &OutputWriteError{Path: name, Err: fmt.Errorf("unable to create output directory: %w", err)}
	}

	f, err := os.CreateTemp(dir, ".hammock-*.tmp")
	if err != nil {
		return &OutputWriteError{Path: name, Err: err}
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	_, werr := f.Write(data)
	if werr = multierr.Append(werr, f.Close()); werr != nil {
		return &OutputWriteError{Path: name, Err: werr}
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		return &OutputWriteError{Path: name, Err: err}
	}
	if err := os.Rename(f.Name(), name); err != nil {
		return &OutputWriteError{Path: name, Err: err}
	}
	return nil
}
