package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/EDKOMANU/mpictl/pkg/store"
)

const runListLimitDefault = 50

var (
	runLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of runs returned",
		Value: runListLimitDefault,
	}

	runIDFlag = &cli.StringFlag{
		Name:     "id",
		Usage:    "Run ID",
		Required: true,
	}

	runsCmd = &cli.Command{
		Name:    "runs",
		Aliases: []string{"r"},
		Usage:   "List past analysis runs saved with analyze --save",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List saved runs, newest first",
				Action: cmdListRuns,
				Flags:  []cli.Flag{runLimitFlag},
			},
			{
				Name:   "get",
				Usage:  "Show one saved run with its indicator tables",
				Action: cmdGetRun,
				Flags:  []cli.Flag{runIDFlag},
			},
		},
	}
)

func cmdListRuns(c *cli.Context) error {
	cfg := getConfig(c)

	runs, err := store.ListRuns(cfg.DB, c.Int(runLimitFlag.Name))
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	return encode(runs)
}

func cmdGetRun(c *cli.Context) error {
	cfg := getConfig(c)

	run, err := store.GetRun(cfg.DB, c.String(runIDFlag.Name))
	if err != nil {
		return fmt.Errorf("getting run: %w", err)
	}
	return encode(run)
}
