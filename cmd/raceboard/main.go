// Package main provides the raceboard CLI for inspecting editions
// from a terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/ultraboard/internal/config"
	"github.com/yourusername/ultraboard/internal/dataset"
	"github.com/yourusername/ultraboard/internal/logger"
	"github.com/yourusername/ultraboard/internal/metrics"
	"github.com/yourusername/ultraboard/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile  string
	editionName string
	sortColumn  string
	sortDesc    bool

	appLogger *logrus.Logger
	cfg       *config.Config
	store     *dataset.Store
	client    *dataset.RateLimitedHTTPClient
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&editionName, "edition", "e", "", "Edition to load (default: first configured)")

	resultsCmd.Flags().StringVar(&sortColumn, "sort", "place", "Sort column: place, bib, name, age, state, laps, distance, race_time")
	resultsCmd.Flags().BoolVar(&sortDesc, "desc", false, "Sort descending")

	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(runnerCmd)
	rootCmd.AddCommand(cohortCmd)
	rootCmd.AddCommand(sectionsCmd)
}

var rootCmd = &cobra.Command{
	Use:     "raceboard",
	Short:   "Inspect race editions from the terminal",
	Long:    `Loads an edition's results and lap records and prints standings, per-runner pacing, placement analysis and course sections.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		return loadEdition(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLogger = logrus.New()
	appLogger.SetLevel(logrus.WarnLevel)
	metrics.InitRegistry()

	clientCfg := dataset.DefaultHTTPClientConfig()
	clientCfg.Timeout = time.Duration(cfg.Dataset.TimeoutSeconds) * time.Second
	client = dataset.NewRateLimitedHTTPClient(clientCfg, appLogger)
	store = dataset.NewStore(dataset.NewStaticJSONSource(client, appLogger), logger.NewDatasetLogger(appLogger))
	return nil
}

func loadEdition(ctx context.Context) error {
	name := editionName
	if name == "" && len(cfg.Editions) > 0 {
		name = cfg.Editions[0].Name
	}
	edition, ok := cfg.EditionByName(name)
	if !ok {
		return fmt.Errorf("edition %q is not configured", name)
	}

	_, err := store.Switch(ctx, dataset.Location{
		Edition:    edition.Name,
		ResultsURL: edition.ResultsURL,
		LapsURL:    edition.LapsURL,
	})
	if err != nil {
		return fmt.Errorf("loading edition %s: %w", name, err)
	}
	return nil
}

func charts() *service.ChartService {
	return service.NewChartService(store, cfg, service.NewChartCache(time.Minute, 16), appLogger)
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print the edition standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _ := store.Snapshot()
		sorted := service.SortResults(snap.Results(), service.SortColumn(sortColumn), !sortDesc)

		fmt.Printf("%-6s %-5s %-24s %-4s %-6s %-5s %-10s %s\n",
			"Place", "Bib", "Name", "Age", "State", "Laps", "Miles", "Time")
		for _, r := range sorted {
			fmt.Printf("%-6d %-5d %-24s %-4d %-6s %-5d %-10.2f %s\n",
				r.Place, r.Bib, r.Name, r.Age, r.State, r.LapsCompleted, r.MilesFloat(), r.RaceTime)
		}
		return nil
	},
}

var runnerCmd = &cobra.Command{
	Use:   "runner <bib>...",
	Short: "Print per-runner pacing analysis",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bibs := make([]int, 0, len(args))
		for _, a := range args {
			bib, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid bib %q", a)
			}
			bibs = append(bibs, bib)
		}

		ds, err := charts().RunnerChart(bibs)
		if err != nil {
			return err
		}
		if len(ds.Runners) == 0 {
			fmt.Println("No selected bib is present in this edition")
			return nil
		}

		for _, info := range ds.Runners {
			fmt.Printf("#%d %s\n", info.Bib, info.Name)
			fmt.Printf("  laps:    %d\n", info.Summary.Count)
			fmt.Printf("  mean:    %.2f min\n", info.Summary.Mean)
			fmt.Printf("  stddev:  %.2f min\n", info.Summary.StdDev)
			if info.MinIndex >= 0 {
				fmt.Printf("  fastest: lap %d\n", info.MinIndex+1)
				fmt.Printf("  slowest: lap %d\n", info.MaxIndex+1)
			}
		}
		return nil
	},
}

var cohortCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Print the placement analysis table",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := charts().CohortTable()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("Placement analysis is not scoped to this edition")
			return nil
		}

		fmt.Printf("%-5s %-24s %-6s %s\n", "Rank", "Name", "Laps", "% over threshold")
		for _, rec := range records {
			fmt.Printf("%-5d %-24s %-6d %.1f%%\n", rec.Rank, rec.Name, rec.LapCount, rec.PercentOverThreshold)
		}
		return nil
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Print the course section plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, err := charts().SectionPlan()
		if err != nil {
			return err
		}

		for _, sec := range sections {
			fmt.Printf("%2d. laps %3d-%3d  %-5s  %s\n",
				sec.Number, sec.StartLap, sec.EndLap, sec.Terrain, sec.Label)
		}
		return nil
	},
}
