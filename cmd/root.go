package cmd

import (
	"context"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fuel-logistics/fuel-sim/sim"
	"github.com/fuel-logistics/fuel-sim/sim/telemetry"
	"github.com/fuel-logistics/fuel-sim/sim/trace"
)

const ticksPerDay = 24 * 60

var (
	seed           int64  // Seed for every random draw of the run
	totalTicks     int64  // Number of ticks to simulate
	logLevel       string // Log verbosity level
	fleetPath      string // Optional YAML fleet configuration
	reportInterval int64  // Ticks between periodic reports (0 disables)
	stationFilter  string // Stations shown in the detailed report: "all" or comma-separated IDs
	resultsPath    string // Optional JSON results file
	traceLevel     string // Decision trace level
	metricsAddr    string // Optional Prometheus listen address
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fuel-sim",
	Short: "Tick-driven simulator for gas station fuel logistics",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fuel logistics simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q", traceLevel)
		}
		if totalTicks < 0 {
			logrus.Fatalf("--ticks must be non-negative, got %d", totalTicks)
		}

		cfg := sim.DefaultFleetConfig()
		if fleetPath != "" {
			loaded, err := sim.LoadFleetConfig(fleetPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg = *loaded
		}

		s, err := sim.NewSimulator(cfg, sim.NewSimulationKey(seed), trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if err != nil {
			logrus.Fatalf("Failed to build fleet: %v", err)
		}
		filter, err := parseStationFilter(stationFilter, len(s.Stations))
		if err != nil {
			logrus.Fatalf("Invalid --stations: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if metricsAddr != "" {
			reg := prometheus.NewRegistry()
			if _, err := telemetry.Register(reg, s); err != nil {
				logrus.Fatalf("Failed to register metrics: %v", err)
			}
			go func() {
				if err := telemetry.Serve(ctx, metricsAddr, reg); err != nil {
					logrus.Errorf("metrics server: %v", err)
				}
			}()
		}

		logrus.Infof("Starting simulation: ticks=%d, seed=%d, report every %d ticks", totalTicks, seed, reportInterval)
		startTime := time.Now()

		var hooks []func(int64)
		if reportInterval > 0 {
			hooks = append(hooks, func(done int64) {
				if done%reportInterval == 0 {
					printReport(os.Stdout, s.Snapshot(), filter)
				}
			})
		}
		s.Run(totalTicks, hooks...)

		final := s.Snapshot()
		if reportInterval <= 0 || totalTicks%reportInterval != 0 {
			printReport(os.Stdout, final, filter)
		}
		if s.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(s.Trace))
		}
		if resultsPath != "" {
			if _, err := sim.SaveResults(resultsPath, seed, final); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random order and travel-time generation")
	runCmd.Flags().Int64Var(&totalTicks, "ticks", 10*ticksPerDay, "Total simulation length (in ticks, one tick = one minute)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&fleetPath, "config", "", "YAML fleet configuration (defaults to the reference fleet)")
	runCmd.Flags().Int64Var(&reportInterval, "report-interval", ticksPerDay, "Ticks between reports (0 reports only at the end)")
	runCmd.Flags().StringVar(&stationFilter, "stations", "all", "Stations in the detailed report: all, none, or comma-separated IDs")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write final metrics and snapshot as JSON to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
