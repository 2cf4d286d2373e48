// Package artifact implements the skip-if-exists caching used by every
// pipeline stage: an artifact already on disk is never recomputed.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// StageError wraps a failure from an external collaborator with the name of
// the pipeline stage that invoked it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Step runs artifact producers guarded by an existence check and a
// per-artifact lock file.
type Step struct {
	logf func(format string, args ...any)
}

func New(logf func(format string, args ...any)) Step {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return Step{logf: logf}
}

// RunIfAbsent invokes produce unless outputPath already exists. The producer
// must write outputPath as its side effect. The parent directory is created
// if missing, and a <outputPath>.lock flock is held around the producer so
// two processes racing on the same artifact serialize instead of clobbering
// each other. Producer failures come back as a StageError; a producer that
// fails mid-write may leave a partial file behind (writes are not atomic).
func (s Step) RunIfAbsent(ctx context.Context, outputPath, stage string, produce func(context.Context) error) (computed bool, err error) {
	if exists, err := fileExists(outputPath); err != nil {
		return false, &StageError{Stage: stage, Err: err}
	} else if exists {
		s.logf("%s: artifact already exists, skipping: %s", stage, outputPath)
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return false, &StageError{Stage: stage, Err: err}
	}

	lock := flock.New(outputPath + ".lock")
	if err := lock.Lock(); err != nil {
		return false, &StageError{Stage: stage, Err: fmt.Errorf("lock artifact: %w", err)}
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	// A concurrent holder may have produced the artifact while we waited.
	if exists, err := fileExists(outputPath); err != nil {
		return false, &StageError{Stage: stage, Err: err}
	} else if exists {
		s.logf("%s: artifact already exists, skipping: %s", stage, outputPath)
		return false, nil
	}

	if err := produce(ctx); err != nil {
		return false, &StageError{Stage: stage, Err: err}
	}
	return true, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
