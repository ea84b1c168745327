package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipp01105/nlogtree/config"
	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/logger"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reapply the config file whenever it changes",
		Long: `Watch keeps running, reapplies the --config file on every change and
logs each reload, the resulting state changes (at DEBUG) and level
changes through the "nlogtree.watch" logger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configFile == "" {
				return errors.New("watch needs --config")
			}

			// Long-running: timestamps come from the cached clock.
			core.StartCoarseClock()

			self := logger.MustGet("nlogtree.watch")
			h, err := opts.newHandler(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer h.Close()
			sub := attach(self, h, cmd.ErrOrStderr())
			defer sub.Cancel()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var subs []*logger.Subscription
			defer func() {
				for _, s := range subs {
					s.Cancel()
				}
			}()
			watchLevels := func(cfg *config.Config) {
				for _, s := range subs {
					s.Cancel()
				}
				subs = subs[:0]
				for _, lc := range cfg.Loggers {
					l, err := logger.Get(lc.Name)
					if err != nil {
						continue
					}
					subs = append(subs, l.OnLevelChange(func(lvl core.Level) {
						self.Infof("%s is now %s", l.FullName(), lvl)
					}))
				}
			}

			if cfg, err := config.Load(opts.configFile); err == nil {
				watchLevels(cfg)
			}

			state := config.Current()
			w, err := config.Watch(opts.configFile, func(cfg *config.Config, err error) {
				if err != nil {
					self.Warn("reload failed", logger.WithError(err))
					return
				}
				self.Infof("reloaded %s", opts.configFile)
				next := config.Current()
				changes, err := config.Diff(state, next)
				if err != nil {
					self.Warn("diff failed", logger.WithError(err))
				}
				for _, c := range changes {
					self.Debug(c)
				}
				state = next
				watchLevels(cfg)
			})
			if err != nil {
				return err
			}
			defer w.Close()

			self.Infof("watching %s", w.Path())
			<-ctx.Done()
			return nil
		},
	}
}
