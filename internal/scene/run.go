package scene

import (
	"context"
	"log/slog"

	"github.com/cybre/yeelight-office/internal/errors"
	"github.com/cybre/yeelight-office/internal/yeelight"
)

// Client is the part of *yeelight.Client a scene needs.
type Client interface {
	Mode() yeelight.ConnectionMode
	Connect(ctx context.Context) error
	Send(ctx context.Context, op yeelight.Operation) (yeelight.Response, error)
	Close() error
}

// Run issues the scene's steps in order. In session mode the first failure
// aborts the scene and is returned as is. In per-command mode every step is
// attempted and failures are collected into an *Error.
func Run(ctx context.Context, client Client, s Scene, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := client.Connect(ctx); err != nil {
		return errors.Wrapf(err, "scene %s", s.Name)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("close bulb client", slog.String("scene", s.Name), slog.Any("error", err))
		}
	}()

	if client.Mode() == yeelight.ModePerCommand {
		return runEach(ctx, client, s, logger)
	}

	for i, step := range s.Steps {
		if _, err := client.Send(ctx, step); err != nil {
			return errors.Wrapf(err, "scene %s step %d (%s)", s.Name, i+1, step.Method())
		}
	}

	logger.Info("scene applied", slog.String("scene", s.Name), slog.Int("steps", len(s.Steps)))

	return nil
}

func runEach(ctx context.Context, client Client, s Scene, logger *slog.Logger) error {
	var failures []Failure

	for i, step := range s.Steps {
		if _, err := client.Send(ctx, step); err != nil {
			logger.Error("scene step failed",
				slog.String("scene", s.Name),
				slog.Int("step", i+1),
				slog.String("method", step.Method()),
				slog.Any("error", err),
			)

			failures = append(failures, Failure{Step: i + 1, Method: step.Method(), Err: err})
		}
	}

	if len(failures) > 0 {
		return errors.Wrap(&Error{Scene: s.Name, Steps: len(s.Steps), Failures: failures})
	}

	logger.Info("scene applied", slog.String("scene", s.Name), slog.Int("steps", len(s.Steps)))

	return nil
}
