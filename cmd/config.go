package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fuel-logistics/fuel-sim/sim"
)

var validatePath string // fleet file checked by `config validate`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect fleet configuration files",
}

var configDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the reference fleet as YAML, ready to edit and pass to run --config",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeFleetConfig(os.Stdout, sim.DefaultFleetConfig()); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a fleet file on top of the defaults and report what it describes",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := sim.LoadFleetConfig(validatePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		describeFleet(os.Stdout, cfg)
	},
}

// writeFleetConfig marshals a FleetConfig to YAML.
func writeFleetConfig(w io.Writer, cfg sim.FleetConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func describeFleet(w io.Writer, cfg *sim.FleetConfig) {
	fmt.Fprintf(w, "Fuels: %d\n", len(cfg.Fuels))
	for _, g := range cfg.Stations {
		fmt.Fprintf(w, "  %d x %s station, %d container(s)\n", g.Count, g.Type, len(g.Containers))
	}
	fmt.Fprintf(w, "Refill check every %d ticks, critical level %d\n", cfg.RefillInterval, cfg.CriticalFuelLevel)
	fmt.Fprintf(w, "Tanker compartment %d, arrival %s ticks\n", cfg.Tanker.CompartmentCapacity, cfg.Tanker.Arrival)
}

func init() {
	configValidateCmd.Flags().StringVar(&validatePath, "file", "", "Path to the fleet YAML file")
	_ = configValidateCmd.MarkFlagRequired("file")

	configCmd.AddCommand(configDefaultsCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
