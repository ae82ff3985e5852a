package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"timerctl/internal/config"
	logx "timerctl/pkg/logx"
)

func newWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the report, then reprint it whenever the config changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			sess, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			n := -1
			if cmd.Flags().Changed("count") {
				if count < 0 {
					return fmt.Errorf("--count must be >= 0")
				}
				n = count
			}
			return runWatch(ctx, cmd, sess, n)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Occurrences per schedule; 0 prints headers only (default preview.count)")
	return cmd
}

// runWatch renders every schedule on each config publish. A negative count
// follows preview.count from the current config.
func runWatch(ctx context.Context, cmd *cobra.Command, sess *session, count int) error {
	render := func(cfg *config.Config) error {
		n := count
		if n < 0 {
			n = cfg.PreviewCount()
		}
		entries, loc, err := buildEntries(cfg, nil)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), sess.log, entries, loc, reportOptions{count: n})
	}

	if err := render(sess.cfg); err != nil {
		return err
	}

	updates := sess.mgr.Subscribe(4)
	defer sess.mgr.Unsubscribe(updates)

	watchErr := make(chan error, 1)
	go func() { watchErr <- sess.mgr.Watch(ctx) }()
	sess.log.Info("watching config", logx.String("path", sess.mgr.Path()))

	prev := sess.cfg
	for {
		select {
		case <-ctx.Done():
			sess.log.Info("watch stopped")
			return <-watchErr
		case cfg := <-updates:
			sections, fields := config.SummarizeConfigChange(prev, cfg)
			if len(sections) == 0 {
				continue
			}
			sess.logSvc.Apply(loggingFor(cmd, cfg))
			sess.log.Info("config reloaded", fields...)
			prev = cfg
			if err := render(cfg); err != nil {
				// Validated configs should always render; keep watching.
				sess.log.Error("render failed", logx.Err(err))
			}
		}
	}
}
