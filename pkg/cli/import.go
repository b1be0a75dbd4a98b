package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/cli/config"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/usecase"
	"github.com/osint-lab/casetrail/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var storageCfg config.Storage

	return &cli.Command{
		Name:      "import",
		Usage:     "Import cases from a JSON export",
		ArgsUsage: "<file>",
		Flags:     storageCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return goerr.New("import file argument is required")
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return goerr.Wrap(err, "failed to read import file", goerr.V("path", path))
			}

			store, err := storageCfg.Configure(ctx, c)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize storage")
			}
			defer safe.Close(ctx, store)

			adapter := kv.NewAdapter(store)
			repo := repository.New(adapter)
			caseStore := usecase.New(repo, adapter)

			result, err := caseStore.ImportCases(ctx, raw)
			if err != nil {
				return err
			}

			color.Green("Imported %d case(s), skipped %d", result.Imported, result.Skipped)
			for _, msg := range result.Errors {
				color.Yellow("  skipped: %s", msg)
			}
			return nil
		},
	}
}
