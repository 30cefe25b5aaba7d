package sim

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fuel-logistics/fuel-sim/sim/trace"
)

// Simulator is the simulation world: fuel catalog, stations, tanker pool and
// clock. It is created once per run and advanced one tick at a time.
//
// Tick order: every station (stationary first, then mini, each in registration
// order) generates and serves its orders and raises refill requests; the
// dispatcher places the whole batch into tankers; every tanker advances one
// phase tick; idle tankers holding cargo start driving.
//
// Concurrency: the tick loop is single-threaded. Snapshot may be called from
// other goroutines and never observes a half-applied tick.
type Simulator struct {
	mu sync.RWMutex

	Clock      int64
	Fuels      *FuelRegistry
	Stations   []*GasStation
	Dispatcher *Dispatcher
	Trace      *trace.SimulationTrace

	rng *PartitionedRNG
}

// NewSimulator builds the fleet described by cfg. Station IDs are assigned
// from 1 in tick order.
func NewSimulator(cfg FleetConfig, key SimulationKey, traceCfg trace.TraceConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(key)
	st := trace.NewSimulationTrace(traceCfg)
	s := &Simulator{
		Fuels:      registry,
		Stations:   make([]*GasStation, 0),
		Dispatcher: NewDispatcher(cfg.TankerParams(), rng.ForSubsystem(SubsystemTankers), st),
		Trace:      st,
		rng:        rng,
	}

	car, truck := cfg.CarProfile(), cfg.TruckProfile()
	for _, stationType := range []StationType{StationStationary, StationMini} {
		for _, group := range cfg.Stations {
			if group.Type != stationType {
				continue
			}
			for i := 0; i < group.Count; i++ {
				id := len(s.Stations) + 1
				stock, err := buildStock(registry, group.Containers)
				if err != nil {
					return nil, fmt.Errorf("station %d: %w", id, err)
				}
				station, err := NewGasStation(id, group.Type, cfg.StationParams(), stock, car, truck, rng.ForSubsystem(SubsystemStation(id)))
				if err != nil {
					return nil, err
				}
				s.Stations = append(s.Stations, station)
			}
		}
	}
	logrus.Infof("Fleet ready: %d stations, %d fuel kinds, seed=%d", len(s.Stations), registry.Len(), key)
	return s, nil
}

func buildStock(registry *FuelRegistry, specs []ContainerSpec) ([]StationFuel, error) {
	stock := make([]StationFuel, 0, len(specs))
	for _, spec := range specs {
		fuel, ok := registry.Lookup(spec.Fuel)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoCompatibleFuel, spec.Fuel)
		}
		initial := spec.Capacity
		if spec.InitialVolume != nil {
			initial = *spec.InitialVolume
		}
		c, err := NewFuelContainer(spec.Capacity, initial)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Fuel, err)
		}
		stock = append(stock, StationFuel{Fuel: fuel, Container: c})
	}
	return stock, nil
}

// Tick advances the whole fleet by one tick.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var batch []OrderedFuel
	for _, station := range s.Stations {
		batch = append(batch, station.Advance(s.Clock)...)
	}
	if len(batch) > 0 {
		s.Dispatcher.Assign(s.Clock, batch)
	}
	s.Dispatcher.Advance(s.Clock)
	s.Dispatcher.Launch(s.Clock)
	s.Clock++
}

// Run advances totalTicks ticks. Each hook is called after every tick with
// the number of ticks completed so far, outside the tick lock.
func (s *Simulator) Run(totalTicks int64, hooks ...func(ticksDone int64)) {
	logrus.Infof("[tick %07d] Running %d ticks", s.Clock, totalTicks)
	for i := int64(0); i < totalTicks; i++ {
		s.Tick()
		done := s.Now()
		for _, hook := range hooks {
			hook(done)
		}
	}
	logrus.Infof("[tick %07d] Simulation ended", s.Now())
}

// Now returns the number of ticks completed.
func (s *Simulator) Now() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Clock
}

// Snapshot copies the state of every station and tanker between two ticks.
func (s *Simulator) Snapshot() FleetSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := FleetSnapshot{
		Clock:    s.Clock,
		Stations: make([]StationSnapshot, 0, len(s.Stations)),
		Tankers:  make([]TankerSnapshot, 0, len(s.Dispatcher.tankers)),
	}
	for _, station := range s.Stations {
		snap.Stations = append(snap.Stations, snapshotStation(station))
	}
	for _, t := range s.Dispatcher.tankers {
		snap.Tankers = append(snap.Tankers, snapshotTanker(t))
	}
	return snap
}
