package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
)

// Stage names one step of a run: Fetch → Match → Format → Publish.
//
// Fetch happens once per run; the other three happen once per article.
// Every failure leaving the pipeline is a *StageError naming the step and,
// for per-article steps, the headline being processed.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageMatch   Stage = "match"
	StageFormat  Stage = "format"
	StagePublish Stage = "publish"
)

// StageError wraps errors with the stage where they occurred.
type StageError struct {
	Stage Stage
	Title string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("%s failed for %q: %v", e.Stage, e.Title, e.Err)
	}

	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf extracts the stage from a pipeline error.
func StageOf(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}

	return "", false
}

// runStage executes fn as the given stage, logging around it and wrapping
// any error in a StageError.
func runStage[T any](ctx context.Context, stage Stage, title string, fn func(context.Context) (T, error)) (T, error) {
	logger := logging.FromContext(ctx).With(slog.String("stage", string(stage)))
	start := time.Now()

	logger.Log(ctx, logging.LevelTrace, "stage started")

	result, err := fn(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "stage failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		var zero T

		return zero, &StageError{Stage: stage, Title: title, Err: err}
	}

	logger.DebugContext(ctx, "stage completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}
