package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timerctl/internal/config"
	logx "timerctl/pkg/logx"
)

var (
	flagConfig   string
	flagLogLevel string
)

// NewRootCmd creates the root cobra command for the timerctl CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "timerctl",
		Short:        "Preview upcoming occurrences of configured schedules",
		Long:         "timerctl loads named schedules (cron, interval, daily, weekly) from a config file and reports their next occurrences.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "./timerctl.yaml", "Path to config (yaml or json)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Override logging.level (trace, debug, info, warn, error)")

	root.AddCommand(
		newNextCmd(),
		newCheckCmd(),
		newWatchCmd(),
	)

	return root
}

// session is a loaded config plus the logger configured from it.
type session struct {
	mgr    *config.Manager
	cfg    *config.Config
	logSvc *logx.Service
	log    logx.Logger
}

func (s *session) Close() {
	if s.logSvc != nil {
		_ = s.logSvc.Close()
	}
}

// loggingFor applies the --log-level override and routes console logs to the
// command's stderr.
func loggingFor(cmd *cobra.Command, cfg *config.Config) logx.Config {
	lc := cfg.Logging.Logx()
	if lvl := strings.TrimSpace(flagLogLevel); lvl != "" {
		lc.Level = lvl
	}
	lc.Out = cmd.ErrOrStderr()
	return lc
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	mgr := config.NewManager(flagConfig)
	mgr.SetValidator(func(_ context.Context, cfg *config.Config) error { return cfg.Validate() })
	cfg, err := mgr.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", flagConfig, err)
	}
	svc, log := logx.New(loggingFor(cmd, cfg))
	mgr.SetLogger(log.With(logx.String("comp", "config")))
	return &session{mgr: mgr, cfg: cfg, logSvc: svc, log: log}, nil
}
