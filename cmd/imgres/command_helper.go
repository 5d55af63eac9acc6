package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/imgres/internal/infrastructure/config"
	"github.com/reglet-dev/imgres/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// adjust, when set, may change the loaded configuration first.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "batch",
//	    RunE: withContainer(nil, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        return runBatch(ctx, args[0])
//	    }),
//	}
func withContainer(adjust func(*config.RuntimeConfig), handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if adjust != nil {
			adjust(cfg)
		}

		c, err := container.New(container.Options{
			Config: cfg,
			Stderr: cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		slog.SetDefault(c.Logger())

		ctx := &CommandContext{
			Container: c,
			Logger:    c.Logger(),
			Context:   cmd.Context(),
		}

		return handler(ctx, cmd, args)
	}
}
