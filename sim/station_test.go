package sim

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGasStation_Validation(t *testing.T) {
	params := testStationParams()
	_, err := NewGasStation(1, "kiosk", params, []StationFuel{containerAt(t, fuel92, 100, 100)}, CarProfile(), TruckProfile("92", ""), zeroRand{})
	assert.Error(t, err, "unknown type")

	_, err = NewGasStation(1, StationMini, params, nil, CarProfile(), TruckProfile("92", ""), zeroRand{})
	assert.Error(t, err, "no fuel")

	_, err = NewGasStation(1, StationMini, params,
		[]StationFuel{containerAt(t, fuel92, 100, 100), containerAt(t, fuel92, 100, 100)},
		CarProfile(), TruckProfile("92", ""), zeroRand{})
	assert.Error(t, err, "duplicate fuel")

	s := newTestStation(t, 1, StationMini, params, zeroRand{}, containerAt(t, fuel92, 100, 100), containerAt(t, fuel95, 100, 100))
	assert.Equal(t, []Fuel{fuel92, fuel95}, s.Fuels())
}

func TestGasStation_Advance_CarServedAndRevenueBooked(t *testing.T) {
	// GIVEN a station with a full 30000 container of 92 and a source that
	// always draws the maximum: the car appears after 5 ticks wanting 50 units
	s := newTestStation(t, 1, StationStationary, testStationParams(), maxRand{}, containerAt(t, fuel92, 30000, 30000))

	// WHEN five ticks run
	var requests []OrderedFuel
	for tick := int64(0); tick < 5; tick++ {
		requests = append(requests, s.Advance(tick)...)
	}

	// THEN exactly one car client took 50 units and paid 50 * 45.6
	c := mustContainer(t, s, fuel92)
	assert.Equal(t, 29950, c.CurrentVolume)
	assert.Equal(t, 50, c.TotalConsumed)
	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(2280)), "revenue = %s", s.Revenue)
	assert.Equal(t, 1, s.ServedCarClients)
	assert.Zero(t, s.ServedTruckClients)
	assert.Empty(t, requests, "far above the critical level")
	assert.Nil(t, s.CarOrder(), "served order is discarded")
	assert.NotNil(t, s.TruckOrder(), "truck appears after 12 ticks")
	assert.Equal(t, 5, s.TicksElapsed)
}

func TestGasStation_Advance_OneOrderPerKindInFlight(t *testing.T) {
	s := newTestStation(t, 1, StationStationary, testStationParams(), maxRand{}, containerAt(t, fuel92, 30000, 30000))

	for tick := int64(0); tick < 60; tick++ {
		s.Advance(tick)
		// a new order is only created on the tick after the previous one was served
		assert.LessOrEqual(t, s.TotalCarOrders-s.ServedCarClients, 1)
		assert.LessOrEqual(t, s.TotalTruckOrders-s.ServedTruckClients, 1)
	}
	// 60 ticks at one car every 5 ticks and one truck every 12
	assert.Equal(t, 12, s.ServedCarClients)
	assert.Equal(t, 5, s.ServedTruckClients)
	assert.Equal(t, 5*12, s.CarIntervalSum)
}

func TestGasStation_AddOrder_Duplicate_Panics(t *testing.T) {
	s := newTestStation(t, 1, StationMini, testStationParams(), zeroRand{}, containerAt(t, fuel92, 100, 100))
	s.AddOrder(NewClientOrder(CarProfile(), zeroRand{}))

	requirePanicsWith(t, ErrDuplicateAssignment, func() {
		s.AddOrder(NewClientOrder(CarProfile(), zeroRand{}))
	})
	assert.Equal(t, 1, s.TotalCarOrders)
}

func TestGasStation_ServeBeforeAppearance_Panics(t *testing.T) {
	s := newTestStation(t, 1, StationMini, testStationParams(), zeroRand{}, containerAt(t, fuel92, 100, 100))
	order := NewClientOrder(CarProfile(), maxRand{})

	requirePanicsWith(t, ErrInvalidState, func() { s.serve(0, order) })
}

func TestGasStation_EmptyContainer_ServesZeroAndNotCounted(t *testing.T) {
	// GIVEN an empty container and a zero critical level
	params := testStationParams()
	params.CriticalFuelLevel = 0
	params.CompartmentCapacity = 1000000
	s := newTestStation(t, 1, StationMini, params, zeroRand{}, containerAt(t, fuel92, 100, 0))

	// WHEN a car client appears (zeroRand: after one tick)
	s.Advance(0)

	// THEN the order counts but the client is not served and nothing is earned
	assert.Equal(t, 1, s.TotalCarOrders)
	assert.Zero(t, s.ServedClients())
	assert.True(t, s.Revenue.IsZero())
}

func TestGasStation_EvaluateRefill_ReservesAndNeverDoubleOrders(t *testing.T) {
	// GIVEN 6000 empty in a 30000 container and 6000 per compartment
	s := newTestStation(t, 3, StationStationary, testStationParams(), zeroRand{}, containerAt(t, fuel92, 30000, 24000))
	assert.True(t, s.RequiresTanker())

	// WHEN refill is evaluated twice
	first := s.EvaluateRefill(0)
	second := s.EvaluateRefill(0)

	// THEN the first evaluation orders one compartment and reserves it
	require.Len(t, first, 1)
	assert.Same(t, s, first[0].Station)
	assert.True(t, first[0].Fuel.Equal(fuel92))
	c := mustContainer(t, s, fuel92)
	assert.Equal(t, 6000, c.ReservedVolume)
	assert.True(t, s.WaitingForTanker())

	// AND the second finds nothing left to order and is not a tanker call
	assert.Empty(t, second)
	assert.Equal(t, 1, s.TankerCalls)
	assert.False(t, s.RequiresTanker())
}

func TestGasStation_RefillList_PerCompartmentInCatalogOrder(t *testing.T) {
	s := newTestStation(t, 1, StationStationary, testStationParams(), zeroRand{},
		containerAt(t, fuel92, 30000, 17000),     // 13000 empty: 2 compartments
		containerAt(t, fuel95, 16000, 15000),     // 1000 empty: none
		containerAt(t, fuelDiesel, 30000, 24000), // 6000 empty: 1 compartment
	)
	list := s.RefillList()
	require.Len(t, list, 3)
	assert.Equal(t, "92", list[0].Name)
	assert.Equal(t, "92", list[1].Name)
	assert.Equal(t, "DT", list[2].Name)

	// no side effects
	assert.Zero(t, mustContainer(t, s, fuel92).ReservedVolume)
	assert.Zero(t, s.TankerCalls)
}

func TestGasStation_CriticalLevel_TriggersRefill(t *testing.T) {
	// GIVEN 1040 units left and a client taking 50 (maxRand)
	s := newTestStation(t, 1, StationMini, testStationParams(), maxRand{}, containerAt(t, fuel92, 16000, 1040))

	// WHEN the car appears on the fifth tick
	var requests []OrderedFuel
	for tick := int64(0); tick < 5; tick++ {
		requests = append(requests, s.Advance(tick)...)
	}

	// THEN the sale drops the level to 990 and two compartments are ordered
	c := mustContainer(t, s, fuel92)
	assert.Equal(t, 990, c.CurrentVolume)
	require.Len(t, requests, 2)
	assert.Equal(t, 12000, c.ReservedVolume)
	assert.Equal(t, 1, s.TankerCalls)
}

func TestGasStation_ScheduledCheck_EveryRefillInterval(t *testing.T) {
	// GIVEN a refill interval of 3 ticks and 10000 empty
	params := testStationParams()
	params.RefillInterval = 3
	s := newTestStation(t, 1, StationStationary, params, maxRand{}, containerAt(t, fuel92, 30000, 20000))

	// WHEN seven ticks run
	perTick := make([]int, 7)
	for tick := range perTick {
		perTick[tick] = len(s.Advance(int64(tick)))
	}

	// THEN the check at elapsed tick 3 orders one compartment and the one at
	// elapsed tick 6 finds only 4050 unreserved and orders nothing
	assert.Equal(t, []int{0, 0, 0, 1, 0, 0, 0}, perTick)
	assert.Equal(t, 1, s.TankerCalls)
}

func TestGasStation_Refill(t *testing.T) {
	s := newTestStation(t, 1, StationStationary, testStationParams(), zeroRand{}, containerAt(t, fuel92, 30000, 24000))
	s.EvaluateRefill(0)
	s.Refill(fuel92, 6000)

	c := mustContainer(t, s, fuel92)
	assert.Equal(t, 30000, c.CurrentVolume)
	assert.Zero(t, c.ReservedVolume)
	assert.False(t, s.WaitingForTanker())

	requirePanicsWith(t, ErrNoCompatibleFuel, func() { s.Refill(fuel95, 10) })
}
