package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StationType decides which tankers may serve a station.
type StationType string

const (
	// StationStationary is a full-size station; any tanker may unload there.
	StationStationary StationType = "stationary"
	// StationMini is a small automated station; only 2-compartment tankers fit.
	StationMini StationType = "mini"
)

// ValidStationTypes is the set of recognized station type names.
var ValidStationTypes = map[StationType]bool{StationStationary: true, StationMini: true}

// OrderedFuel is a request for one tanker compartment of fuel for a station.
type OrderedFuel struct {
	Station *GasStation
	Fuel    Fuel
}

func (o OrderedFuel) String() string {
	return fmt.Sprintf("%s@station_%d", o.Fuel.Name, o.Station.ID)
}

// StationParams groups the refill policy shared by stations.
type StationParams struct {
	RefillInterval      int // ticks between scheduled refill checks
	CriticalFuelLevel   int // at or below this volume a sale triggers a refill check
	CompartmentCapacity int // volume carried by one tanker compartment
}

// GasStation owns its fuel containers and at most one in-flight order per
// client kind.
type GasStation struct {
	ID     int
	Type   StationType
	Params StationParams

	fuels      []Fuel
	containers map[string]*FuelContainer
	carOrder   *ClientOrder
	truckOrder *ClientOrder
	carProfile OrderProfile
	truckProf  OrderProfile
	rng        RandomSource

	TicksElapsed int
	Revenue      decimal.Decimal

	TotalCarOrders     int
	TotalTruckOrders   int
	ServedCarClients   int
	ServedTruckClients int
	CarIntervalSum     int // sum of AppearAfter over car orders, for average wait reporting
	TruckIntervalSum   int
	TankerCalls        int
}

// StationFuel pairs a fuel with the container that stores it.
type StationFuel struct {
	Fuel      Fuel
	Container *FuelContainer
}

// NewGasStation creates a station. Fuels keep the given order, which is the
// order clients see when choosing.
func NewGasStation(id int, stationType StationType, params StationParams, stock []StationFuel,
	car, truck OrderProfile, rng RandomSource) (*GasStation, error) {
	if !ValidStationTypes[stationType] {
		return nil, fmt.Errorf("unknown station type %q", stationType)
	}
	if len(stock) == 0 {
		return nil, fmt.Errorf("station %d stocks no fuel", id)
	}
	if params.RefillInterval <= 0 || params.CompartmentCapacity <= 0 {
		return nil, fmt.Errorf("station %d: refill interval and compartment capacity must be positive", id)
	}
	s := &GasStation{
		ID:         id,
		Type:       stationType,
		Params:     params,
		containers: make(map[string]*FuelContainer, len(stock)),
		carProfile: car,
		truckProf:  truck,
		rng:        rng,
	}
	for _, sf := range stock {
		if _, dup := s.containers[sf.Fuel.Name]; dup {
			return nil, fmt.Errorf("station %d stocks %q twice", id, sf.Fuel.Name)
		}
		s.fuels = append(s.fuels, sf.Fuel)
		s.containers[sf.Fuel.Name] = sf.Container
	}
	return s, nil
}

// Fuels returns the stocked fuels in catalog order.
func (s *GasStation) Fuels() []Fuel {
	out := make([]Fuel, len(s.fuels))
	copy(out, s.fuels)
	return out
}

// Container returns the container for a fuel.
func (s *GasStation) Container(fuel Fuel) (*FuelContainer, bool) {
	c, ok := s.containers[fuel.Name]
	return c, ok
}

func (s *GasStation) mustContainer(fuel Fuel) *FuelContainer {
	c, ok := s.containers[fuel.Name]
	if !ok {
		panic(fmt.Errorf("%w: station %d does not stock %q", ErrNoCompatibleFuel, s.ID, fuel.Name))
	}
	return c
}

// CarOrder returns the in-flight car order, or nil.
func (s *GasStation) CarOrder() *ClientOrder { return s.carOrder }

// TruckOrder returns the in-flight truck order, or nil.
func (s *GasStation) TruckOrder() *ClientOrder { return s.truckOrder }

// AddOrder registers a new in-flight order of its kind.
func (s *GasStation) AddOrder(order *ClientOrder) {
	switch order.Kind {
	case ClientCar:
		if s.carOrder != nil {
			panic(fmt.Errorf("%w: station %d already has a car order", ErrDuplicateAssignment, s.ID))
		}
		s.carOrder = order
		s.CarIntervalSum += order.AppearAfter
		s.TotalCarOrders++
	case ClientTruck:
		if s.truckOrder != nil {
			panic(fmt.Errorf("%w: station %d already has a truck order", ErrDuplicateAssignment, s.ID))
		}
		s.truckOrder = order
		s.TruckIntervalSum += order.AppearAfter
		s.TotalTruckOrders++
	default:
		panic(fmt.Errorf("%w: unknown client kind %q", ErrInvalidState, order.Kind))
	}
}

// Advance runs one tick of the station and returns the refill requests it
// raised, in the order they were raised.
func (s *GasStation) Advance(clock int64) []OrderedFuel {
	if s.carOrder == nil {
		s.AddOrder(NewClientOrder(s.carProfile, s.rng))
	}
	if s.truckOrder == nil {
		s.AddOrder(NewClientOrder(s.truckProf, s.rng))
	}

	var requests []OrderedFuel
	if s.TicksElapsed%s.Params.RefillInterval == 0 && s.TicksElapsed != 0 {
		requests = append(requests, s.EvaluateRefill(clock)...)
	}

	if s.carOrder.Advance() {
		requests = append(requests, s.serve(clock, s.carOrder)...)
		s.carOrder = nil
	}
	if s.truckOrder.Advance() {
		requests = append(requests, s.serve(clock, s.truckOrder)...)
		s.truckOrder = nil
	}
	s.TicksElapsed++
	return requests
}

// serve sells fuel to an appeared client and checks the critical level of the
// container it drew from.
func (s *GasStation) serve(clock int64, order *ClientOrder) []OrderedFuel {
	if !order.Appeared() {
		panic(fmt.Errorf("%w: %s served before it appeared", ErrInvalidState, order))
	}
	fuel := order.RequestedFuel(s.fuels)
	container := s.mustContainer(fuel)
	volume := order.RequestedVolume(container.CurrentVolume)
	container.Take(volume)
	s.Revenue = s.Revenue.Add(fuel.UnitPrice.Mul(decimal.NewFromInt(int64(volume))))
	if volume > 0 {
		switch order.Kind {
		case ClientCar:
			s.ServedCarClients++
		case ClientTruck:
			s.ServedTruckClients++
		}
	}
	if container.CurrentVolume <= s.Params.CriticalFuelLevel {
		logrus.Debugf("[tick %07d] station %d: %s at critical level (%d)", clock, s.ID, fuel.Name, container.CurrentVolume)
		return s.EvaluateRefill(clock)
	}
	return nil
}

// RequiresTanker reports whether any container has room for a full compartment
// that is not already on its way.
func (s *GasStation) RequiresTanker() bool {
	for _, f := range s.fuels {
		if s.containers[f.Name].EmptyUnreservedSpace() >= s.Params.CompartmentCapacity {
			return true
		}
	}
	return false
}

// WaitingForTanker reports whether any delivery to this station is in transit.
func (s *GasStation) WaitingForTanker() bool {
	for _, c := range s.containers {
		if c.ReservedVolume > 0 {
			return true
		}
	}
	return false
}

// RefillList returns one entry per full compartment of empty unreserved space,
// fuel by fuel in catalog order. It has no side effects.
func (s *GasStation) RefillList() []Fuel {
	var out []Fuel
	capacity := s.Params.CompartmentCapacity
	for _, f := range s.fuels {
		compartments := s.containers[f.Name].EmptyUnreservedSpace() / capacity
		for i := 0; i < compartments; i++ {
			out = append(out, f)
		}
	}
	return out
}

// EvaluateRefill orders every full compartment of empty unreserved space and
// reserves it immediately, so a second evaluation in the same tick cannot
// order the same space again. An empty result reserves nothing and does not
// count as a tanker call.
func (s *GasStation) EvaluateRefill(clock int64) []OrderedFuel {
	list := s.RefillList()
	if len(list) == 0 {
		return nil
	}
	if s.WaitingForTanker() {
		logrus.Debugf("[tick %07d] station %d orders more fuel while a delivery is in transit", clock, s.ID)
	}
	s.TankerCalls++
	requests := make([]OrderedFuel, 0, len(list))
	for _, f := range list {
		s.containers[f.Name].ReserveSpace(s.Params.CompartmentCapacity)
		requests = append(requests, OrderedFuel{Station: s, Fuel: f})
	}
	logrus.Debugf("[tick %07d] station %d requests %d compartment(s)", clock, s.ID, len(requests))
	return requests
}

// Refill unloads delivered fuel into the matching container.
func (s *GasStation) Refill(fuel Fuel, volume int) {
	s.mustContainer(fuel).Fill(volume)
}

// ServedClients is the number of clients that received a non-zero volume.
func (s *GasStation) ServedClients() int {
	return s.ServedCarClients + s.ServedTruckClients
}

// TotalOrders is the number of client orders ever registered.
func (s *GasStation) TotalOrders() int {
	return s.TotalCarOrders + s.TotalTruckOrders
}
