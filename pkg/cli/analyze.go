package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/EDKOMANU/mpictl/pkg/config"
	"github.com/EDKOMANU/mpictl/pkg/dataset"
	"github.com/EDKOMANU/mpictl/pkg/mpi"
	"github.com/EDKOMANU/mpictl/pkg/store"
)

const (
	scoredFileName        = "scored.csv"
	ratesFileName         = "deprivation_rates.csv"
	contributionsFileName = "contributions.csv"
)

var (
	dataFileFlag = &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Path to the CSV dataset (rows = units, columns = 0/1 indicators)",
		Required: true,
	}

	confFileFlag = &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Path to the analysis config (dimensions, weights, threshold)",
		Required: true,
	}

	thresholdFlag = &cli.Float64Flag{
		Name:  "threshold",
		Usage: "Poverty classification cutoff in [0,1] (overrides config)",
		Value: mpi.DefaultThreshold,
	}

	noValidateFlag = &cli.BoolFlag{
		Name:  "no-validate",
		Usage: "Skip the weight sum tolerance check",
	}

	outDirFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Directory to write the scored, deprivation-rate, and contribution CSVs",
	}

	saveFlag = &cli.BoolFlag{
		Name:  "save",
		Usage: "Persist the run summary to the local history database",
	}

	analyzeCmd = &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Compute MPI, headcount, intensity, and contribution breakdown for a dataset",
		UsageText: `mpictl analyze --data households.csv --config mpi.yaml
   mpictl analyze -d households.csv -c mpi.yaml --threshold 0.4 --out results/
   mpictl analyze -d households.csv -c mpi.yaml --save`,
		Action: cmdAnalyze,
		Flags: []cli.Flag{
			dataFileFlag,
			confFileFlag,
			thresholdFlag,
			noValidateFlag,
			outDirFlag,
			saveFlag,
		},
	}
)

// AnalyzeResult is the stdout summary of one analysis run. Scored
// records go to the exported CSV, not the terminal.
type AnalyzeResult struct {
	Source        string              `json:"source" yaml:"source"`
	Duration      string              `json:"duration" yaml:"duration"`
	Threshold     float64             `json:"threshold" yaml:"threshold"`
	Stats         mpi.Stats           `json:"stats" yaml:"stats"`
	Weights       []mpi.WeightEntry   `json:"weights" yaml:"weights"`
	Rates         []mpi.IndicatorRate `json:"deprivation_rates" yaml:"deprivation_rates"`
	Contributions []mpi.Contribution  `json:"contributions" yaml:"contributions"`
	RunID         string              `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Files         []string            `json:"files,omitempty" yaml:"files,omitempty"`
}

func cmdAnalyze(c *cli.Context) error {
	start := time.Now()
	cfg := getConfig(c)
	dataPath := c.String(dataFileFlag.Name)

	conf, err := config.Read(c.String(confFileFlag.Name))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts := conf.Options()
	if c.IsSet(thresholdFlag.Name) {
		opts.Threshold = c.Float64(thresholdFlag.Name)
	}
	if c.Bool(noValidateFlag.Name) {
		opts.Validate = false
	}

	f, err := os.Open(dataPath)
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	records, _, err := dataset.Read(f)
	if err != nil {
		return fmt.Errorf("reading dataset %s: %w", dataPath, err)
	}
	slog.Debug("dataset loaded", "path", dataPath, "records", len(records))

	rep, err := mpi.Analyze(conf.Dimensions, records, opts)
	if err != nil {
		return err
	}

	res := &AnalyzeResult{
		Source:        filepath.Base(dataPath),
		Threshold:     opts.Threshold,
		Stats:         rep.Stats,
		Weights:       rep.Weights,
		Rates:         rep.Rates,
		Contributions: rep.Contributions,
	}

	if dir := c.String(outDirFlag.Name); dir != "" {
		files, err := exportReport(dir, conf.Dimensions.Indicators(), rep)
		if err != nil {
			return fmt.Errorf("exporting results: %w", err)
		}
		res.Files = files
	}

	if c.Bool(saveFlag.Name) {
		id, err := store.SaveReport(cfg.DB, res.Source, opts.Threshold, rep)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		slog.Debug("run saved", "id", id)
		res.RunID = id
	}

	res.Duration = time.Since(start).Round(time.Millisecond).String()
	return encode(res)
}

// exportReport writes the three result tables concurrently and
// returns the file paths.
func exportReport(dir string, indicators []string, rep *mpi.Report) ([]string, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	files := []string{
		filepath.Join(dir, scoredFileName),
		filepath.Join(dir, ratesFileName),
		filepath.Join(dir, contributionsFileName),
	}

	var g errgroup.Group
	g.Go(func() error {
		return writeFile(files[0], func(f *os.File) error {
			return dataset.WriteScored(f, indicators, rep.Scored)
		})
	})
	g.Go(func() error {
		return writeFile(files[1], func(f *os.File) error {
			return dataset.WriteRates(f, rep.Rates)
		})
	})
	g.Go(func() error {
		return writeFile(files[2], func(f *os.File) error {
			return dataset.WriteContributions(f, rep.Contributions)
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
