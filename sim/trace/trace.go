package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every tanker assignment and delivery.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects dispatch decisions during a simulation run.
// All Record methods are safe on a nil receiver, which records nothing.
type SimulationTrace struct {
	Config      TraceConfig
	Assignments []AssignmentRecord
	Deliveries  []DeliveryRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone so callers can record unconditionally.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == TraceLevelNone || config.Level == "" {
		return nil
	}
	return &SimulationTrace{
		Config:      config,
		Assignments: make([]AssignmentRecord, 0),
		Deliveries:  make([]DeliveryRecord, 0),
	}
}

// RecordAssignment appends a tanker assignment record.
func (st *SimulationTrace) RecordAssignment(record AssignmentRecord) {
	if st == nil {
		return
	}
	st.Assignments = append(st.Assignments, record)
}

// RecordDelivery appends a delivery record.
func (st *SimulationTrace) RecordDelivery(record DeliveryRecord) {
	if st == nil {
		return
	}
	st.Deliveries = append(st.Deliveries, record)
}
