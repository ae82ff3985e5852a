package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"timerctl/internal/config"
)

func newNextCmd() *cobra.Command {
	var (
		count int
		from  string
		last  string
	)

	cmd := &cobra.Command{
		Use:   "next [name...]",
		Short: "Print the next occurrences of configured schedules",
		Long: `Print the next occurrences of every configured schedule, or only the named ones.

--last marks a schedule past due when its first occurrence after that instant
is already behind the evaluation time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			fromTs, err := config.ParseTimeField("--from", from)
			if err != nil {
				return err
			}
			lastTs, err := config.ParseTimeField("--last", last)
			if err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("--count must be >= 0")
			}
			if !cmd.Flags().Changed("count") {
				count = sess.cfg.PreviewCount()
			}

			entries, loc, err := buildEntries(sess.cfg, args)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), sess.log, entries, loc, reportOptions{
				count: count,
				from:  fromTs,
				last:  lastTs,
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Occurrences per schedule; 0 prints headers only (default preview.count)")
	cmd.Flags().StringVar(&from, "from", "", "Start instant, RFC3339 (default now)")
	cmd.Flags().StringVar(&last, "last", "", "Previous expected firing, RFC3339; enables the past-due check")
	return cmd
}
