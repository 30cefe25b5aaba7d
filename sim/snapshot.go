package sim

import "github.com/shopspring/decimal"

// ContainerSnapshot is a read-only copy of one container.
type ContainerSnapshot struct {
	Fuel           string `json:"fuel"`
	Capacity       int    `json:"capacity"`
	InitialVolume  int    `json:"initial_volume"`
	CurrentVolume  int    `json:"current_volume"`
	ReservedVolume int    `json:"reserved_volume"`
	TotalConsumed  int    `json:"total_consumed"`
	TotalReceived  int    `json:"total_received"`
}

// StationSnapshot is a read-only copy of one station's counters.
type StationSnapshot struct {
	ID                 int                 `json:"id"`
	Type               StationType         `json:"type"`
	TotalCarOrders     int                 `json:"total_car_orders"`
	TotalTruckOrders   int                 `json:"total_truck_orders"`
	ServedCarClients   int                 `json:"served_car_clients"`
	ServedTruckClients int                 `json:"served_truck_clients"`
	CarIntervalSum     int                 `json:"car_interval_sum"`
	TruckIntervalSum   int                 `json:"truck_interval_sum"`
	Revenue            decimal.Decimal     `json:"revenue"`
	TankerCalls        int                 `json:"tanker_calls"`
	WaitingForTanker   bool                `json:"waiting_for_tanker"`
	Containers         []ContainerSnapshot `json:"containers"`
}

// ServedClients is the number of clients that received fuel.
func (s StationSnapshot) ServedClients() int {
	return s.ServedCarClients + s.ServedTruckClients
}

// TotalOrders is the number of client orders registered.
func (s StationSnapshot) TotalOrders() int {
	return s.TotalCarOrders + s.TotalTruckOrders
}

// TankerSnapshot is a read-only copy of one tanker.
type TankerSnapshot struct {
	ID              int         `json:"id"`
	TankCount       int         `json:"tank_count"`
	Busy            bool        `json:"busy"`
	Phase           TankerPhase `json:"phase"`
	CargoSize       int         `json:"cargo_size"`
	DrivesCompleted int         `json:"drives_completed"`
}

// FleetSnapshot is the consistent state of the whole fleet between two ticks.
type FleetSnapshot struct {
	Clock    int64             `json:"clock"`
	Stations []StationSnapshot `json:"stations"`
	Tankers  []TankerSnapshot  `json:"tankers"`
}

func snapshotStation(s *GasStation) StationSnapshot {
	snap := StationSnapshot{
		ID:                 s.ID,
		Type:               s.Type,
		TotalCarOrders:     s.TotalCarOrders,
		TotalTruckOrders:   s.TotalTruckOrders,
		ServedCarClients:   s.ServedCarClients,
		ServedTruckClients: s.ServedTruckClients,
		CarIntervalSum:     s.CarIntervalSum,
		TruckIntervalSum:   s.TruckIntervalSum,
		Revenue:            s.Revenue,
		TankerCalls:        s.TankerCalls,
		WaitingForTanker:   s.WaitingForTanker(),
		Containers:         make([]ContainerSnapshot, 0, len(s.fuels)),
	}
	for _, f := range s.fuels {
		c := s.containers[f.Name]
		snap.Containers = append(snap.Containers, ContainerSnapshot{
			Fuel:           f.Name,
			Capacity:       c.Capacity,
			InitialVolume:  c.InitialVolume,
			CurrentVolume:  c.CurrentVolume,
			ReservedVolume: c.ReservedVolume,
			TotalConsumed:  c.TotalConsumed,
			TotalReceived:  c.TotalReceived,
		})
	}
	return snap
}

func snapshotTanker(t *Tanker) TankerSnapshot {
	return TankerSnapshot{
		ID:              t.ID,
		TankCount:       t.TankCount,
		Busy:            t.Busy(),
		Phase:           t.Phase,
		CargoSize:       len(t.cargo),
		DrivesCompleted: t.DrivesCompleted,
	}
}
