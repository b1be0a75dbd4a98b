package cli

import (
	"context"

	"github.com/osint-lab/casetrail/pkg/cli/config"
	"github.com/osint-lab/casetrail/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run is the CLI entry point
func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "casetrail",
		Usage:   "Local-first OSINT investigation case manager",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting casetrail", "logger", &loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdList(),
			cmdExport(),
			cmdImport(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
