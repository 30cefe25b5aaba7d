package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fuel-logistics/fuel-sim/sim"
	"github.com/fuel-logistics/fuel-sim/sim/trace"
)

// parseStationFilter turns the --stations flag into station IDs in 1..n.
func parseStationFilter(value string, n int) ([]int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		ids := make([]int, n)
		for i := range ids {
			ids[i] = i + 1
		}
		return ids, nil
	case "none":
		return []int{}, nil
	}
	var ids []int
	for _, field := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("station ID %q is not a number", field)
		}
		if id < 1 || id > n {
			return nil, fmt.Errorf("station ID %d outside 1..%d", id, n)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// printReport writes the day title, the detailed lines of the selected
// stations and the fleet metrics.
func printReport(w io.Writer, snap sim.FleetSnapshot, stationIDs []int) {
	fmt.Fprintln(w, "--------------------")
	fmt.Fprintf(w, "Day %d finished. Ticks (minutes) elapsed: %d.\n\n", snap.Clock/ticksPerDay, snap.Clock)
	for _, id := range stationIDs {
		if id < 1 || id > len(snap.Stations) {
			continue
		}
		printStation(w, snap.Stations[id-1])
	}
	if len(stationIDs) > 0 {
		fmt.Fprintln(w)
	}
	sim.NewFleetMetrics(snap).Print(w)
}

func printStation(w io.Writer, st sim.StationSnapshot) {
	name := fmt.Sprintf("Station %d (%s):", st.ID, st.Type)
	fmt.Fprintf(w, " %-24s served %d of %d; tanker calls %d", name, st.ServedClients(), st.TotalOrders(), st.TankerCalls)
	if st.WaitingForTanker {
		fmt.Fprint(w, " (waiting for tanker)")
	}
	fmt.Fprint(w, "\n\tFuel: ")
	for _, c := range st.Containers {
		fuel := fmt.Sprintf("[%q: %d(+%d)]", c.Fuel, c.CurrentVolume, c.ReservedVolume)
		fmt.Fprintf(w, "%-22s(+%d/-%d)  ", fuel, c.TotalReceived, c.TotalConsumed)
	}
	fmt.Fprintln(w)
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Dispatch Trace ===")
	fmt.Fprintf(w, "Assignments          : %d (tankers bought: %d)\n", summary.TotalAssignments, summary.TankersCreated)
	sizes := make([]int, 0, len(summary.AssignmentsByTanks))
	for n := range summary.AssignmentsByTanks {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	for _, n := range sizes {
		fmt.Fprintf(w, "  to %d-compartment   : %d\n", n, summary.AssignmentsByTanks[n])
	}
	fmt.Fprintf(w, "Deliveries           : %d (%d units to %d stations)\n",
		summary.TotalDeliveries, summary.DeliveredVolume, summary.StationsServed)
	fuels := make([]string, 0, len(summary.VolumeByFuel))
	for f := range summary.VolumeByFuel {
		fuels = append(fuels, f)
	}
	sort.Strings(fuels)
	for _, f := range fuels {
		fmt.Fprintf(w, "  %-18s : %d\n", f, summary.VolumeByFuel[f])
	}
}
