// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"hammock/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by render subcommand
	CodePage     encoding.Encoding
	Template     string
	TemplateName string
	Tally        Tally

	start         time.Time
	restoreStdLog func()
}

// Tally counts documents processed during the run.
type Tally struct {
	Rendered int
	Failed   int
	Warnings int // unknown elements met in rendered documents
}

// Err reports failed documents, if any.
func (t Tally) Err() error {
	if t.Failed == 0 {
		return nil
	}
	return fmt.Errorf("unable to render %d of %d document(s)", t.Failed, t.Failed+t.Rendered)
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
