package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/weiihann/parbench/corpus"
)

// Runner launches isolated runs of the external analysis tool. Each run
// gets a fresh scratch directory holding a private copy of the sample, so
// no state leaks between runs or modes.
type Runner struct {
	Tool     string
	Timeout  time.Duration
	TempRoot string // defaults to os.TempDir()
	Logger   *slog.Logger
}

// NewRunner creates a Runner for the resolved tool binary.
func NewRunner(tool string, timeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		Tool:    tool,
		Timeout: timeout,
		Logger:  logger.With(slog.String("tool", filepath.Base(tool))),
	}
}

// Execute runs the tool once against a private copy of sample in the given
// mode and captures its combined output. The scratch directory is removed
// on every return path. A failed run comes back as a *RunError; output
// produced before a timeout is discarded with the scratch directory.
func (r *Runner) Execute(
	ctx context.Context,
	sample corpus.Sample,
	mode Mode,
) (*Output, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	tempRoot := r.TempRoot
	if tempRoot == "" {
		tempRoot = os.TempDir()
	}

	scratch := filepath.Join(tempRoot, "parbench-"+uuid.NewString())

	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, &RunError{
			Kind:   ErrExec,
			Detail: fmt.Sprintf("create scratch dir: %v", err),
		}
	}
	defer os.RemoveAll(scratch)

	if err := copyFile(sample.Path, filepath.Join(scratch, sample.Name)); err != nil {
		return nil, &RunError{
			Kind:   ErrExec,
			Detail: fmt.Sprintf("copy sample into scratch dir: %v", err),
		}
	}

	// The scratch directory is the tool's sole positional input; the mode
	// flag, if any, follows it.
	args := append([]string{scratch}, mode.Args()...)

	cmd := exec.CommandContext(ctx, r.Tool, args...)

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	r.Logger.Info("starting run",
		slog.String("sample", sample.Name),
		slog.String("mode", mode.String()),
		slog.String("scratch", scratch),
	)

	wallStart := time.Now()
	runErr := cmd.Run()
	wallElapsed := time.Since(wallStart)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &RunError{
			Kind: ErrTimeout,
			Detail: fmt.Sprintf("%s run of %s exceeded %s",
				mode, sample.Name, r.Timeout),
		}
	}

	if runErr != nil {
		out := &Output{Text: combined.String()}

		return nil, &RunError{
			Kind:   ErrExec,
			Detail: fmt.Sprintf("%v; output: %s", runErr, out.Prefix()),
		}
	}

	r.Logger.Info("run finished",
		slog.String("sample", sample.Name),
		slog.String("mode", mode.String()),
		slog.Duration("wall_time", wallElapsed),
	)

	return &Output{Text: combined.String(), Wall: wallElapsed}, nil
}

// copyFile copies src to dst preserving permission bits and modification
// time, so the tool sees the sample exactly as it sits in the corpus.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(
		dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm(),
	)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()

		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
