// Package cli implements the yeelight-office command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cybre/yeelight-office/internal/config"
	"github.com/cybre/yeelight-office/internal/errors"
	"github.com/cybre/yeelight-office/internal/scene"
	"github.com/cybre/yeelight-office/internal/state"
	"github.com/cybre/yeelight-office/internal/yeelight"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the root command around cfg.
func NewRootCommand(cfg config.Config) *cobra.Command {
	var (
		mode  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:           "yeelight-office",
		Short:         "Put the office bulb into a lighting scene",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Debug = cfg.Debug || debug

			logger := newLogger(cmd.OutOrStdout(), cfg.Debug)
			slog.SetDefault(logger)

			err := apply(cmd.Context(), cfg, mode, logger)
			if err != nil {
				report(cmd.ErrOrStderr(), err, cfg.Debug)
				return err
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("scene %s applied", mode)

			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", fmt.Sprintf("scene to apply (%s)", strings.Join(scene.Names(), ", ")))
	cmd.Flags().BoolVar(&debug, "debug", false, "log raw requests and responses")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	var opts *slog.HandlerOptions
	if debug {
		opts = &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func apply(ctx context.Context, cfg config.Config, mode string, logger *slog.Logger) error {
	s, err := scene.Lookup(mode)
	if err != nil {
		return err
	}

	opts := append(cfg.ClientOptions(), yeelight.WithLogger(logger))
	client := yeelight.New(cfg.Host, cfg.Port, opts...)

	logger.Debug("applying scene",
		slog.String("scene", s.Name),
		slog.String("addr", client.Addr()),
		slog.String("mode", string(client.Mode())),
	)

	runErr := scene.Run(ctx, client, s, logger)

	if cfg.StateDir != "" {
		if err := record(cfg, s, runErr); err != nil {
			logger.Warn("failed to record scene", slog.Any("error", err))
		}
	}

	return runErr
}

func record(cfg config.Config, s scene.Scene, runErr error) error {
	store, err := state.Open(cfg.StateDir)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := state.Record{
		Scene:          s.Name,
		ConnectionMode: string(cfg.ConnectionMode),
		Succeeded:      runErr == nil,
		AppliedAt:      time.Now().UTC(),
	}

	var sceneErr *scene.Error
	switch {
	case errors.As(runErr, &sceneErr):
		rec.FailedSteps = len(sceneErr.Failures)
	case runErr != nil:
		rec.FailedSteps = 1
	}

	return store.Save(rec)
}

// report prints err for the user. In debug mode it adds the raw exchange
// behind each failure and the error stack.
func report(w io.Writer, err error, debug bool) {
	pterm.Error.WithWriter(w).Println(err.Error())

	if !debug {
		return
	}

	failures := []error{err}
	var sceneErr *scene.Error
	if errors.As(err, &sceneErr) {
		failures = sceneErr.Unwrap()
	}

	for _, failure := range failures {
		request, response := yeelight.DebugPayloads(failure)
		if request != "" {
			fmt.Fprintf(w, "request:  %s\n", request)
		}
		if response != "" {
			fmt.Fprintf(w, "response: %s\n", response)
		}
	}

	if stack := errors.Stack(err); stack != "" {
		fmt.Fprintln(w, stack)
	}
}
