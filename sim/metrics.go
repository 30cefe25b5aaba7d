// Aggregates a FleetSnapshot into fleet-wide statistics for reporting:
// clients served per station type, revenue, order intervals, tanker usage.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// TypeMetrics aggregates the stations of one type.
type TypeMetrics struct {
	Stations      int             `json:"stations"`
	TotalOrders   int             `json:"total_orders"`
	ServedClients int             `json:"served_clients"`
	Revenue       decimal.Decimal `json:"revenue"`
	RevenueMean   float64         `json:"revenue_mean"`   // per station
	RevenueStdDev float64         `json:"revenue_stddev"` // per station
}

// UnservedClients is the number of orders that received no fuel.
func (m TypeMetrics) UnservedClients() int {
	return m.TotalOrders - m.ServedClients
}

// TankerMetrics aggregates the tankers of one compartment count.
type TankerMetrics struct {
	Count  int `json:"count"`
	Idle   int `json:"idle"` // not busy and empty
	Drives int `json:"drives"`
}

// FleetMetrics aggregates statistics about the fleet at one point in time.
type FleetMetrics struct {
	Clock            int64                        `json:"clock"`
	ByStationType    map[StationType]*TypeMetrics `json:"by_station_type"`
	AvgCarInterval   float64                      `json:"avg_car_interval"`   // ticks between car orders
	AvgTruckInterval float64                      `json:"avg_truck_interval"` // ticks between truck orders
	TankerCalls      int                          `json:"tanker_calls"`
	Tankers          int                          `json:"tankers"`
	IdleTankers      int                          `json:"idle_tankers"`
	ByTankCount      map[int]*TankerMetrics       `json:"by_tank_count"`
}

// NewFleetMetrics computes FleetMetrics from a snapshot.
func NewFleetMetrics(snap FleetSnapshot) *FleetMetrics {
	m := &FleetMetrics{
		Clock:         snap.Clock,
		ByStationType: make(map[StationType]*TypeMetrics),
		ByTankCount:   make(map[int]*TankerMetrics),
	}
	revenues := make(map[StationType][]float64)
	carSum, carCount, truckSum, truckCount := 0, 0, 0, 0
	for _, st := range snap.Stations {
		tm, ok := m.ByStationType[st.Type]
		if !ok {
			tm = &TypeMetrics{}
			m.ByStationType[st.Type] = tm
		}
		tm.Stations++
		tm.TotalOrders += st.TotalOrders()
		tm.ServedClients += st.ServedClients()
		tm.Revenue = tm.Revenue.Add(st.Revenue)
		revenues[st.Type] = append(revenues[st.Type], st.Revenue.InexactFloat64())
		m.TankerCalls += st.TankerCalls

		carSum += st.CarIntervalSum
		carCount += st.TotalCarOrders
		truckSum += st.TruckIntervalSum
		truckCount += st.TotalTruckOrders
	}
	for stationType, values := range revenues {
		tm := m.ByStationType[stationType]
		if len(values) < 2 {
			// sample stddev is undefined for a single station
			tm.RevenueMean = values[0]
			continue
		}
		tm.RevenueMean, tm.RevenueStdDev = stat.MeanStdDev(values, nil)
	}
	if carCount > 0 {
		m.AvgCarInterval = float64(carSum) / float64(carCount)
	}
	if truckCount > 0 {
		m.AvgTruckInterval = float64(truckSum) / float64(truckCount)
	}

	for _, t := range snap.Tankers {
		tm, ok := m.ByTankCount[t.TankCount]
		if !ok {
			tm = &TankerMetrics{}
			m.ByTankCount[t.TankCount] = tm
		}
		tm.Count++
		tm.Drives += t.DrivesCompleted
		if !t.Busy && t.CargoSize == 0 {
			tm.Idle++
			m.IdleTankers++
		}
		m.Tankers++
	}
	return m
}

// typeMetrics returns the aggregate for a type, zero-valued when absent.
func (m *FleetMetrics) typeMetrics(t StationType) TypeMetrics {
	if tm, ok := m.ByStationType[t]; ok {
		return *tm
	}
	return TypeMetrics{}
}

// tankMetrics returns the aggregate for a size, zero-valued when absent.
func (m *FleetMetrics) tankMetrics(n int) TankerMetrics {
	if tm, ok := m.ByTankCount[n]; ok {
		return *tm
	}
	return TankerMetrics{}
}

// Print writes the fleet summary.
func (m *FleetMetrics) Print(w io.Writer) {
	stationary, mini := m.typeMetrics(StationStationary), m.typeMetrics(StationMini)
	fmt.Fprintln(w, "=== Fleet Metrics ===")
	fmt.Fprintf(w, "Ticks elapsed        : %d (day %d)\n", m.Clock, m.Clock/(24*60))
	fmt.Fprintf(w, "Served clients       : stationary %d, mini %d\n", stationary.ServedClients, mini.ServedClients)
	fmt.Fprintf(w, "Unserved clients     : stationary %d, mini %d\n", stationary.UnservedClients(), mini.UnservedClients())
	fmt.Fprintf(w, "Revenue              : stationary %s, mini %s\n", stationary.Revenue.StringFixed(2), mini.Revenue.StringFixed(2))
	fmt.Fprintf(w, "Revenue per station  : stationary %.2f ± %.2f, mini %.2f ± %.2f\n",
		stationary.RevenueMean, stationary.RevenueStdDev, mini.RevenueMean, mini.RevenueStdDev)
	fmt.Fprintf(w, "Average order wait   : cars %.2f ticks, trucks %.2f ticks\n", m.AvgCarInterval, m.AvgTruckInterval)
	fmt.Fprintf(w, "Tanker calls         : %d\n", m.TankerCalls)

	sizes := make([]int, 0, len(m.ByTankCount))
	for n := range m.ByTankCount {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	fmt.Fprintf(w, "Tankers in pool      : %d (idle %d)\n", m.Tankers, m.IdleTankers)
	for _, n := range sizes {
		tm := m.tankMetrics(n)
		fmt.Fprintf(w, "  %d-compartment      : %d (idle %d), %d drives\n", n, tm.Count, tm.Idle, tm.Drives)
	}
}

// RunResults is the JSON document written at the end of a run.
type RunResults struct {
	RunID    string        `json:"run_id"`
	Seed     int64         `json:"seed"`
	Metrics  *FleetMetrics `json:"metrics"`
	Snapshot FleetSnapshot `json:"snapshot"`
}

// SaveResults writes the metrics and final snapshot as JSON under a fresh run ID.
func SaveResults(path string, seed int64, snap FleetSnapshot) (*RunResults, error) {
	results := &RunResults{
		RunID:    uuid.NewString(),
		Seed:     seed,
		Metrics:  NewFleetMetrics(snap),
		Snapshot: snap,
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing results: %w", err)
	}
	logrus.Infof("Results of run %s written to %s", results.RunID, path)
	return results, nil
}
