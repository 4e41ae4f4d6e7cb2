package commands

import (
	"os"
	"time"

	"wxsim/internal/config"
	"wxsim/internal/logging"
	"wxsim/internal/reporting"
	"wxsim/internal/scenario"
	"wxsim/internal/simulation"
	"wxsim/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	scenarioPath string
	days         int
	restarts     int
	policyName   string
	allowRepeat  bool
	seed         int64
	minOverride  float64
	maxOverride  float64
	parallel     int
	pace         time.Duration
	csvPath      string
	reportPath   string
)

var rootCmd = &cobra.Command{
	Use:   "wxsim",
	Short: "wxsim simulates weighted weather events across daily restart windows",
	Long: `wxsim simulates randomly-timed, weighted weather events across repeated
daily cycles of fixed-length restart windows, reports the observed per-event
distribution (average/min/max per day), and compares it against the
closed-form stationary expectation of the no-immediate-repeat model.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("wxsim starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		runSimulation(cmd)
	},
}

func runSimulation(cmd *cobra.Command) {
	// Environment defaults apply only when the flag was not given.
	if !cmd.Flags().Changed("days") {
		days = cfg.DefaultDays
	}
	if !cmd.Flags().Changed("restarts") {
		restarts = cfg.DefaultRestarts
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", scenarioPath).Msg("Failed to load scenario")
	}

	eventMin, eventMax := sc.EventMin, sc.EventMax
	if minOverride > 0 {
		eventMin = minOverride
	}
	if maxOverride > 0 {
		eventMax = maxOverride
	}

	policy, err := simulation.ParsePolicy(policyName)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid selection policy")
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runCfg := simulation.RunConfig{
		Days:                  days,
		RestartsPerDay:        restarts,
		EventMin:              eventMin,
		EventMax:              eventMax,
		Policy:                policy,
		ForbidImmediateRepeat: !allowRepeat,
		Seed:                  seed,
		Parallel:              parallel,
		Pace:                  pace,
	}
	if err := runCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid run configuration")
	}

	table, err := simulation.NewWeightTable(sc.Events)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid event table")
	}

	log.Info().
		Int("days", runCfg.Days).
		Int("restartsPerDay", runCfg.RestartsPerDay).
		Int("windowSeconds", runCfg.WindowSeconds()).
		Int("events", table.Len()).
		Int64("seed", runCfg.Seed).
		Msg("Running simulation")

	started := time.Now()
	daily, err := simulation.NewEngine(table, runCfg).Run(cmd.Context())
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}
	log.Info().Dur("elapsed", time.Since(started)).Msg("Simulation complete")

	summary := stats.Summarize(daily, table.Names(), runCfg.RestartsPerDay)
	analytic := simulation.Analyze(table, runCfg)
	report := reporting.New(runCfg, table.Names(), summary, analytic, daily)

	reporting.FormatText(os.Stdout, report)

	// Export failures do not invalidate the computed statistics; log and
	// keep going.
	if csvPath != "" {
		if err := reporting.WriteDailyCSV(csvPath, report); err != nil {
			log.Error().Err(err).Str("path", csvPath).Msg("CSV export failed")
		} else {
			log.Info().Str("path", csvPath).Msg("Daily counts exported")
		}
	}
	if reportPath != "" {
		if err := reporting.WriteMarkdown(reportPath, report); err != nil {
			log.Error().Err(err).Str("path", reportPath).Msg("Report export failed")
		} else {
			log.Info().Str("path", reportPath).Msg("Report written")
		}
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to scenario file (JSON or YAML)")
	rootCmd.Flags().IntVar(&days, "days", 30, "number of simulated days")
	rootCmd.Flags().IntVar(&restarts, "restarts", 4, "restart windows per day")
	rootCmd.Flags().StringVar(&policyName, "policy", string(simulation.PolicyBucketExpansion), "selection policy: buckets or weights")
	rootCmd.Flags().BoolVar(&allowRepeat, "allow-repeat", false, "allow the same event twice in a row")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.Flags().Float64Var(&minOverride, "min", 0, "override minimum inter-event delay in seconds")
	rootCmd.Flags().Float64Var(&maxOverride, "max", 0, "override maximum inter-event delay in seconds")
	rootCmd.Flags().IntVar(&parallel, "parallel", 0, "run days with this many workers (0 = sequential)")
	rootCmd.Flags().DurationVar(&pace, "pace", 0, "wait this long before each simulated day")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "export per-day counts to this CSV file")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "write a Markdown report to this file")

	_ = rootCmd.MarkFlagRequired("scenario")
}
