// Package trace provides decision-trace recording for tanker dispatch analysis.
// It has no dependencies on sim/ and stores pure data types.
package trace

// AssignmentRecord captures one refill request placed into a tanker compartment.
type AssignmentRecord struct {
	Clock       int64
	StationID   int
	StationType string
	Fuel        string
	TankerID    int
	TankCount   int
	NewTanker   bool // the tanker was bought for this request
}

// DeliveryRecord captures one compartment unloaded at a station.
type DeliveryRecord struct {
	Clock     int64
	TankerID  int
	StationID int
	Fuel      string
	Volume    int
}
