package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAssignments   int
	TankersCreated     int
	TotalDeliveries    int
	DeliveredVolume    int
	AssignmentsByTanks map[int]int    // tanker compartment count → assignments
	VolumeByFuel       map[string]int // fuel name → delivered volume
	StationsServed     int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		AssignmentsByTanks: make(map[int]int),
		VolumeByFuel:       make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAssignments = len(st.Assignments)
	for _, a := range st.Assignments {
		summary.AssignmentsByTanks[a.TankCount]++
		if a.NewTanker {
			summary.TankersCreated++
		}
	}

	stations := make(map[int]bool)
	summary.TotalDeliveries = len(st.Deliveries)
	for _, d := range st.Deliveries {
		summary.DeliveredVolume += d.Volume
		summary.VolumeByFuel[d.Fuel] += d.Volume
		stations[d.StationID] = true
	}
	summary.StationsServed = len(stations)

	return summary
}
