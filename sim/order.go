package sim

import "fmt"

// ClientKind distinguishes the two client order variants.
type ClientKind string

const (
	ClientCar   ClientKind = "car"
	ClientTruck ClientKind = "truck"
)

// FuelChoice picks the fuel a client asks for, given the fuels a station stocks
// in catalog order. Implementations panic with ErrNoCompatibleFuel when no
// stocked fuel suits the client.
type FuelChoice interface {
	Choose(available []Fuel, rng RandomSource) Fuel
}

// UniformFuelChoice picks any stocked fuel with equal probability.
type UniformFuelChoice struct{}

func (UniformFuelChoice) Choose(available []Fuel, rng RandomSource) Fuel {
	if len(available) == 0 {
		panic(fmt.Errorf("%w: station stocks no fuel", ErrNoCompatibleFuel))
	}
	return available[rng.Intn(len(available))]
}

// BaseOrDieselChoice flips a coin between the base fuel and diesel when the
// station stocks diesel, and otherwise takes the base fuel without drawing.
type BaseOrDieselChoice struct {
	Base   string
	Diesel string
}

func (c BaseOrDieselChoice) Choose(available []Fuel, rng RandomSource) Fuel {
	base, hasBase := findFuel(available, c.Base)
	diesel, hasDiesel := findFuel(available, c.Diesel)
	if hasDiesel {
		if rng.Intn(2) == 1 {
			return diesel
		}
	}
	if !hasBase {
		panic(fmt.Errorf("%w: base fuel %q not stocked", ErrNoCompatibleFuel, c.Base))
	}
	return base
}

func findFuel(available []Fuel, name string) (Fuel, bool) {
	for _, f := range available {
		if f.Name == name {
			return f, true
		}
	}
	return Fuel{}, false
}

// OrderProfile describes one client variant: how long until the client shows
// up, how much it wants, and how it picks a fuel.
type OrderProfile struct {
	Kind     ClientKind
	Interval IntRange
	Volume   IntRange
	Choice   FuelChoice
}

// CarProfile is the default passenger car client.
func CarProfile() OrderProfile {
	return OrderProfile{
		Kind:     ClientCar,
		Interval: IntRange{Min: 1, Max: 6},
		Volume:   IntRange{Min: 10, Max: 51},
		Choice:   UniformFuelChoice{},
	}
}

// TruckProfile is the default freight truck client.
func TruckProfile(base, diesel string) OrderProfile {
	return OrderProfile{
		Kind:     ClientTruck,
		Interval: IntRange{Min: 1, Max: 13},
		Volume:   IntRange{Min: 30, Max: 301},
		Choice:   BaseOrDieselChoice{Base: base, Diesel: diesel},
	}
}

// ClientOrder is a client that will show up at a station after AppearAfter ticks.
//
// Lifecycle: pending (countdown running) -> appeared (fires once) -> served and
// discarded by the station. The chosen fuel is resolved the first time it is
// asked for and never changes afterwards.
type ClientOrder struct {
	Kind        ClientKind
	AppearAfter int

	requestedVolume int
	countdown       Countdown
	appeared        bool
	chosen          *Fuel
	choice          FuelChoice
	rng             RandomSource
}

// NewClientOrder draws the appearance delay, then the requested volume.
func NewClientOrder(profile OrderProfile, rng RandomSource) *ClientOrder {
	o := &ClientOrder{
		Kind:   profile.Kind,
		choice: profile.Choice,
		rng:    rng,
	}
	o.AppearAfter = profile.Interval.Draw(rng)
	o.requestedVolume = profile.Volume.Draw(rng)
	o.countdown.Start(o.AppearAfter)
	return o
}

// Advance moves the order one tick closer to the client's arrival and reports
// whether the client appeared on this tick.
func (o *ClientOrder) Advance() bool {
	if o.countdown.Advance() {
		o.appeared = true
		return true
	}
	return false
}

// Appeared reports whether the countdown has reached zero.
func (o *ClientOrder) Appeared() bool {
	return o.appeared
}

// TicksRemaining returns the ticks left before the client appears.
func (o *ClientOrder) TicksRemaining() int {
	left, _ := o.countdown.Remaining()
	return left
}

// RequestedFuel returns the client's fuel, choosing it on first use.
func (o *ClientOrder) RequestedFuel(available []Fuel) Fuel {
	if o.chosen == nil {
		f := o.choice.Choose(available, o.rng)
		o.chosen = &f
	}
	return *o.chosen
}

// RequestedVolume caps the client's wish at what the container can give.
func (o *ClientOrder) RequestedVolume(maxAvailable int) int {
	return max(min(o.requestedVolume, maxAvailable), 0)
}

func (o *ClientOrder) String() string {
	return fmt.Sprintf("ClientOrder: (Kind: %s, AppearAfter: %d, Remaining: %d, Volume: %d)",
		o.Kind, o.AppearAfter, o.TicksRemaining(), o.requestedVolume)
}
