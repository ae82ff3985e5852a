package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	logx "timerctl/pkg/logx"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config and every schedule in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			loc, _ := sess.cfg.Location()
			sess.log.Info("config valid",
				logx.String("path", sess.mgr.Path()),
				logx.Int("schedules", len(sess.cfg.Schedules)),
				logx.String("tz", loc.String()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d schedules (%s)\n", len(sess.cfg.Schedules), loc)
			return nil
		},
	}
}
