package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"hammock/archive"
	"hammock/state"
)

// DefaultDestination is used when no destination has been specified.
const DefaultDestination = "out"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = DefaultDestination
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	tmplPath := cmd.String("template")
	if len(tmplPath) == 0 {
		tmplPath = env.Cfg.Document.TemplatePath
	}
	if len(tmplPath) > 0 {
		data, err := os.ReadFile(tmplPath)
		if err != nil {
			return fmt.Errorf("unable to read page template from %q: %w", tmplPath, err)
		}
		env.Template, env.TemplateName = string(data), tmplPath
		env.Rpt.Store("template.html", tmplPath)
	}

	if cp := cmd.String("input-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully decoding documents without BOM", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.String("template", env.TemplateName))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)),
			zap.Int("rendered", env.Tally.Rendered), zap.Int("failed", env.Tally.Failed), zap.Int("warnings", env.Tally.Warnings))
	}(time.Now())

	if err := process(ctx, src, dst, log); err != nil {
		return err
	}
	return env.Tally.Err()
}

// process handles the core logic independently of CLI framework. It
// determines the input type (directory, archive with optional path inside, or
// single file) and processes accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			pathIn := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, pathIn, dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		doc, enc, err := isDocFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if !doc {
			// explicitly named file is given to parser anyway
			log.Warn("Input was not recognized as document, rendering as is", zap.String("file", head))
		}
		processFile(ctx, head, filepath.Base(head), enc, dst, log)
		break
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

func processFile(ctx context.Context, path, src string, enc srcEncoding, dst string, log *zap.Logger) {
	env := state.EnvFromContext(ctx)

	file, err := os.Open(path)
	if err != nil {
		env.Tally.Failed++
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		return
	}
	defer file.Close()

	if err := processDocument(ctx, file, enc, src, dst, log); err != nil {
		env.Tally.Failed++
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
	}
}

// processDir walks directory tree finding documents and archives and
// processes them.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			count++
			if err := processArchiveUnder(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		doc, enc, err := isDocFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !doc {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}

		count++
		processFile(ctx, path, rel, enc, dst, log)
		return nil
	})
}

func processArchive(ctx context.Context, path, pathIn, dst string, log *zap.Logger) error {
	return processArchiveUnder(ctx, path, pathIn, "", dst, log)
}

// processArchiveUnder walks all files inside archive, finds documents under
// "pathIn" and processes them. Results go to "pathOut" relative to "dst".
func processArchiveUnder(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	env := state.EnvFromContext(ctx)

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	opts := []archive.Option{archive.WithLogger(log)}
	if env.CodePage != nil {
		opts = append(opts, archive.WithNameDecoder(env.CodePage))
	}

	return archive.Walk(ctx, path, pathIn, func(ctx context.Context, e *archive.Entry) error {
		doc, enc, err := isDocInArchive(e.File)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", e.Archive), zap.String("path", e.Name), zap.Error(err))
			return nil
		}
		if !doc {
			log.Debug("Skipping file, not recognized as document", zap.String("archive", e.Archive), zap.String("file", e.Name))
			return nil
		}

		count++

		r, err := e.Open()
		if err != nil {
			env.Tally.Failed++
			log.Error("Unable to process file in archive", zap.String("archive", e.Archive), zap.String("file", e.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := processDocument(ctx, r, enc, filepath.Join(pathOut, filepath.FromSlash(e.Name)), dst, log); err != nil {
			env.Tally.Failed++
			log.Error("Unable to process file in archive", zap.String("archive", e.Archive), zap.String("file", e.Name), zap.Error(err))
		}
		return nil
	}, opts...)
}
