package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fuel-logistics/fuel-sim/sim/trace"
)

// TankerPhase is the step of the delivery cycle a tanker is in.
type TankerPhase string

const (
	PhaseIdle      TankerPhase = "idle"
	PhaseEnRoute   TankerPhase = "en_route"
	PhaseUnloading TankerPhase = "unloading"
	PhaseReturning TankerPhase = "returning"
)

// TankerParams groups the timings and sizes shared by every tanker.
type TankerParams struct {
	CompartmentCapacity int      // volume unloaded per compartment
	Arrival             IntRange // ticks to drive to a station
	UnloadTicks         int
	ReturnTicks         int
}

// Tanker is a fuel truck with 2 or 3 compartments. Each compartment carries
// one OrderedFuel; a single run may visit several stations.
//
// Phases: idle -> en_route -> unloading -> (en_route to the next station | returning) -> idle.
// A tanker is busy while its phase countdown runs and accepts cargo only when
// it is not busy and has a spare compartment.
type Tanker struct {
	ID              int
	TankCount       int
	Params          TankerParams
	Phase           TankerPhase
	Destination     *GasStation
	DrivesCompleted int

	cargo     []OrderedFuel
	countdown Countdown
	rng       RandomSource
	trace     *trace.SimulationTrace
}

// NewTanker creates an idle, empty tanker.
func NewTanker(id, tankCount int, params TankerParams, rng RandomSource, st *trace.SimulationTrace) *Tanker {
	if tankCount != 2 && tankCount != 3 {
		panic(fmt.Errorf("%w: tanker must have 2 or 3 compartments, got %d", ErrInvalidState, tankCount))
	}
	return &Tanker{
		ID:        id,
		TankCount: tankCount,
		Params:    params,
		Phase:     PhaseIdle,
		rng:       rng,
		trace:     st,
	}
}

// Busy reports whether a phase countdown is running.
func (t *Tanker) Busy() bool {
	return t.countdown.Running()
}

// SpareCompartments is the number of compartments without cargo.
func (t *Tanker) SpareCompartments() int {
	return t.TankCount - len(t.cargo)
}

// Free reports whether the tanker can take cargo right now.
func (t *Tanker) Free() bool {
	return !t.Busy() && t.SpareCompartments() > 0
}

// Cargo returns a copy of the loaded requests in load order.
func (t *Tanker) Cargo() []OrderedFuel {
	out := make([]OrderedFuel, len(t.cargo))
	copy(out, t.cargo)
	return out
}

// PhaseTicksRemaining returns the ticks left in the current phase, 0 when idle.
func (t *Tanker) PhaseTicksRemaining() int {
	left, _ := t.countdown.Remaining()
	return left
}

// Load puts a request into a spare compartment. It returns false, leaving the
// tanker untouched, when the tanker is busy or full.
func (t *Tanker) Load(req OrderedFuel) bool {
	if !t.Free() {
		return false
	}
	t.cargo = append(t.cargo, req)
	return true
}

// StartDelivery sends an idle, loaded tanker to the station of its first cargo item.
func (t *Tanker) StartDelivery(clock int64) {
	if t.Busy() {
		panic(fmt.Errorf("%w: tanker %d is already %s", ErrInvalidState, t.ID, t.Phase))
	}
	if len(t.cargo) == 0 {
		panic(fmt.Errorf("%w: tanker %d has no cargo to deliver", ErrInvalidState, t.ID))
	}
	t.driveTo(clock, t.cargo[0].Station)
}

// Advance moves the current phase one tick and performs the transition when
// the phase ends. An idle tanker is left untouched.
func (t *Tanker) Advance(clock int64) {
	if !t.countdown.Advance() {
		return
	}
	switch t.Phase {
	case PhaseEnRoute:
		logrus.Debugf("[tick %07d] tanker %d arrived at station %d", clock, t.ID, t.Destination.ID)
		t.Phase = PhaseUnloading
		t.countdown.Start(t.Params.UnloadTicks)
	case PhaseUnloading:
		t.unload(clock)
	case PhaseReturning:
		logrus.Debugf("[tick %07d] tanker %d back at base", clock, t.ID)
		t.Phase = PhaseIdle
	default:
		panic(fmt.Errorf("%w: tanker %d countdown fired while %s", ErrInvalidState, t.ID, t.Phase))
	}
}

func (t *Tanker) driveTo(clock int64, station *GasStation) {
	t.Destination = station
	t.Phase = PhaseEnRoute
	ticks := t.Params.Arrival.Draw(t.rng)
	t.countdown.Start(ticks)
	logrus.Debugf("[tick %07d] tanker %d driving to station %d (%d ticks)", clock, t.ID, station.ID, ticks)
}

// unload empties every compartment addressed to the current station, then
// drives on to the next station in cargo or heads back to base.
func (t *Tanker) unload(clock int64) {
	station := t.Destination
	remaining := t.cargo[:0]
	delivered := 0
	for _, item := range t.cargo {
		if item.Station != station {
			remaining = append(remaining, item)
			continue
		}
		station.Refill(item.Fuel, t.Params.CompartmentCapacity)
		delivered++
		t.trace.RecordDelivery(trace.DeliveryRecord{
			Clock:     clock,
			TankerID:  t.ID,
			StationID: station.ID,
			Fuel:      item.Fuel.Name,
			Volume:    t.Params.CompartmentCapacity,
		})
	}
	if delivered == 0 {
		panic(fmt.Errorf("%w: tanker %d has no cargo for station %d", ErrInvalidState, t.ID, station.ID))
	}
	clear(t.cargo[len(remaining):])
	t.cargo = remaining
	logrus.Debugf("[tick %07d] tanker %d unloaded %d compartment(s) at station %d", clock, t.ID, delivered, station.ID)

	if len(t.cargo) > 0 {
		t.driveTo(clock, t.cargo[0].Station)
		return
	}
	t.Destination = nil
	t.Phase = PhaseReturning
	t.countdown.Start(t.Params.ReturnTicks)
	t.DrivesCompleted++
}
