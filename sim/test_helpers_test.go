package sim

import (
	"errors"
	"testing"
)

// scriptedRand returns the scripted values in order, each reduced modulo n,
// then zeros once the script is exhausted.
type scriptedRand struct {
	values []int
	draws  int
}

func (r *scriptedRand) Intn(n int) int {
	r.draws++
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

// maxRand always draws the largest value of the range.
type maxRand struct{}

func (maxRand) Intn(n int) int { return n - 1 }

// zeroRand always draws the smallest value of the range.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

// requirePanicsWith runs fn and fails unless it panics with an error matching target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v, got none", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected panic with error, got %T: %v", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("expected panic wrapping %v, got %v", target, err)
		}
	}()
	fn()
}

var (
	fuel92     = NewFuel("92", 45.6)
	fuel95     = NewFuel("95", 48.2)
	fuelDiesel = NewFuel("DT", 51.5)
)

func testStationParams() StationParams {
	return StationParams{RefillInterval: 24 * 60, CriticalFuelLevel: 1000, CompartmentCapacity: 6000}
}

func testTankerParams() TankerParams {
	return TankerParams{
		CompartmentCapacity: 6000,
		Arrival:             IntRange{Min: 60, Max: 121},
		UnloadTicks:         40,
		ReturnTicks:         90,
	}
}

// containerAt is shorthand for a stocked fuel with the given capacity and volume.
func containerAt(t *testing.T, fuel Fuel, capacity, volume int) StationFuel {
	t.Helper()
	c, err := NewFuelContainer(capacity, volume)
	if err != nil {
		t.Fatalf("NewFuelContainer(%d, %d): %v", capacity, volume, err)
	}
	return StationFuel{Fuel: fuel, Container: c}
}

func newTestStation(t *testing.T, id int, stationType StationType, params StationParams, rng RandomSource, stock ...StationFuel) *GasStation {
	t.Helper()
	s, err := NewGasStation(id, stationType, params, stock, CarProfile(), TruckProfile("92", "DT"), rng)
	if err != nil {
		t.Fatalf("NewGasStation: %v", err)
	}
	return s
}

func mustContainer(t *testing.T, s *GasStation, fuel Fuel) *FuelContainer {
	t.Helper()
	c, ok := s.Container(fuel)
	if !ok {
		t.Fatalf("station %d does not stock %s", s.ID, fuel.Name)
	}
	return c
}
