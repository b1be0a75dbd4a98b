package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/cli/config"
	"github.com/osint-lab/casetrail/pkg/domain/types"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/usecase"
	"github.com/osint-lab/casetrail/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var storageCfg config.Storage

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List cases, newest first",
		Flags:   storageCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := storageCfg.Configure(ctx, c)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize storage")
			}
			defer safe.Close(ctx, store)

			adapter := kv.NewAdapter(store)
			repo := repository.New(adapter)
			caseStore := usecase.New(repo, adapter)

			cases, err := caseStore.ListCases(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list cases")
			}
			if len(cases) == 0 {
				fmt.Println("No cases.")
				return nil
			}

			active, err := caseStore.GetActiveCase(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve active case")
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPRIORITY\tFINDINGS\tUPDATED")
			for _, cs := range cases {
				name := cs.Name
				if active != nil && cs.ID == active.ID {
					name = color.GreenString("* " + name)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					cs.ID, name, colorStatus(cs.Status), colorPriority(cs.Priority),
					len(cs.Findings), cs.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func colorStatus(s types.CaseStatus) string {
	switch s {
	case types.CaseStatusActive:
		return color.GreenString(s.String())
	case types.CaseStatusClosed:
		return color.YellowString(s.String())
	case types.CaseStatusArchived:
		return color.HiBlackString(s.String())
	default:
		return s.String()
	}
}

func colorPriority(p types.Priority) string {
	switch p {
	case types.PriorityCritical:
		return color.HiRedString(p.String())
	case types.PriorityHigh:
		return color.RedString(p.String())
	case types.PriorityMedium:
		return color.YellowString(p.String())
	default:
		return p.String()
	}
}
