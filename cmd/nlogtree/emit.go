package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/logger"
)

func newEmitCmd(opts *options) *cobra.Command {
	var (
		errMsg string
		scoped bool
	)

	cmd := &cobra.Command{
		Use:   "emit <logger> <level> <message...>",
		Short: "Log a message through a named logger",
		Long: `Emit logs a message at the given level through the named logger.
Use "" as the logger name for the root logger. Nothing is printed when the
level is filtered out.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.Get(args[0])
			if err != nil {
				return err
			}
			level, err := core.ParseLevel(args[1])
			if err != nil {
				return err
			}

			h, err := opts.newHandler(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer h.Close()
			sub := attach(l, h, cmd.ErrOrStderr())
			defer sub.Cancel()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if scoped {
				ctx = core.WithScope(ctx)
			}

			var logOpts []logger.Option
			if errMsg != "" {
				logOpts = append(logOpts, logger.WithError(errors.New(errMsg)))
			}
			l.LogContext(ctx, level, strings.Join(args[2:], " "), logOpts...)
			return nil
		},
	}

	cmd.Flags().StringVar(&errMsg, "error", "", "attach an error to the record")
	cmd.Flags().BoolVar(&scoped, "scope", false, "tag the record with a fresh scope id")
	return cmd
}
