package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/fuel-logistics/fuel-sim/sim/trace"
)

const (
	// maxTankCount is the largest tanker the dispatcher buys.
	maxTankCount = 3
	// minTankCount is the smallest tanker, and the only size a mini station accepts.
	minTankCount = 2
)

// Dispatcher owns the tanker pool and turns each tick's refill requests into
// compartment assignments, buying tankers when the free pool cannot take a request.
type Dispatcher struct {
	Params  TankerParams
	tankers []*Tanker
	rng     RandomSource
	trace   *trace.SimulationTrace
}

// NewDispatcher creates a dispatcher with an empty tanker pool.
func NewDispatcher(params TankerParams, rng RandomSource, st *trace.SimulationTrace) *Dispatcher {
	return &Dispatcher{
		Params:  params,
		tankers: make([]*Tanker, 0),
		rng:     rng,
		trace:   st,
	}
}

// Tankers returns the pool in purchase order.
func (d *Dispatcher) Tankers() []*Tanker {
	return d.tankers
}

// compatible reports whether a tanker may unload at a station of the given type.
func compatible(t *Tanker, stationType StationType) bool {
	return stationType == StationStationary || t.TankCount < maxTankCount
}

// firstFree returns the first free tanker that may serve the station type.
func (d *Dispatcher) firstFree(stationType StationType) *Tanker {
	for _, t := range d.tankers {
		if t.Free() && compatible(t, stationType) {
			return t
		}
	}
	return nil
}

// newTankCount sizes a tanker bought for a request. Mini stations always get
// the small tanker. Stationary stations get one sized to the requests still
// unplaced in this batch, capped at the largest size and floored at the smallest.
func newTankCount(stationType StationType, remaining int) int {
	if stationType == StationMini {
		return minTankCount
	}
	return max(min(remaining, maxTankCount), minTankCount)
}

func (d *Dispatcher) buy(tankCount int) *Tanker {
	t := NewTanker(len(d.tankers), tankCount, d.Params, d.rng, d.trace)
	d.tankers = append(d.tankers, t)
	return t
}

// Assign places every request of the batch, in order, into a compatible free
// tanker. remaining starts at the batch size and drops by the size of every
// tanker bought; it is the figure used to size the next purchase.
func (d *Dispatcher) Assign(clock int64, batch []OrderedFuel) {
	remaining := len(batch)
	for _, req := range batch {
		stationType := req.Station.Type
		created := false
		t := d.firstFree(stationType)
		if t == nil {
			tanks := newTankCount(stationType, remaining)
			remaining -= tanks
			t = d.buy(tanks)
			created = true
			logrus.Debugf("[tick %07d] bought %d-compartment tanker %d for station %d", clock, tanks, t.ID, req.Station.ID)
		}
		if !t.Load(req) {
			// firstFree only returns tankers that can load
			panic("Dispatcher: free tanker rejected cargo")
		}
		d.trace.RecordAssignment(trace.AssignmentRecord{
			Clock:       clock,
			StationID:   req.Station.ID,
			StationType: string(stationType),
			Fuel:        req.Fuel.Name,
			TankerID:    t.ID,
			TankCount:   t.TankCount,
			NewTanker:   created,
		})
	}
}

// Advance moves every tanker one tick.
func (d *Dispatcher) Advance(clock int64) {
	for _, t := range d.tankers {
		t.Advance(clock)
	}
}

// Launch starts every idle tanker that holds cargo.
func (d *Dispatcher) Launch(clock int64) {
	for _, t := range d.tankers {
		if !t.Busy() && len(t.cargo) > 0 {
			t.StartDelivery(clock)
		}
	}
}
