package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/cli/config"
	"github.com/osint-lab/casetrail/pkg/domain/types"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/service/export"
	"github.com/osint-lab/casetrail/pkg/usecase"
	"github.com/osint-lab/casetrail/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var storageCfg config.Storage
	var format string
	var outDir string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Export format (json, markdown or html)",
			Value:       "markdown",
			Sources:     cli.EnvVars("CASETRAIL_EXPORT_FORMAT"),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Output directory",
			Value:       ".",
			Destination: &outDir,
		},
	}
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:      "export",
		Usage:     "Export one case as a report",
		ArgsUsage: "<case-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			caseID := c.Args().First()
			if caseID == "" {
				return goerr.New("case id argument is required")
			}

			store, err := storageCfg.Configure(ctx, c)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize storage")
			}
			defer safe.Close(ctx, store)

			adapter := kv.NewAdapter(store)
			repo := repository.New(adapter)
			caseStore := usecase.New(repo, adapter)

			target, err := caseStore.GetCase(ctx, types.CaseID(caseID))
			if err != nil {
				return err
			}

			now := time.Now()
			var product *export.Product
			switch format {
			case "json":
				product, err = export.JSON(target, now)
			case "markdown", "md":
				product = export.Markdown(target, now)
			case "html":
				product, err = export.HTML(target, now)
			default:
				return goerr.New("unknown export format", goerr.V("format", format))
			}
			if err != nil {
				return goerr.Wrap(err, "failed to render export")
			}

			path := filepath.Join(outDir, product.Filename)
			if err := os.WriteFile(path, []byte(product.Content), 0o600); err != nil {
				return goerr.Wrap(err, "failed to write export", goerr.V("path", path))
			}

			color.Green("Exported %s (%s) to %s", target.Name, product.MimeType, path)
			return nil
		},
	}
}
