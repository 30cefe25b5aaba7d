package sim

import "fmt"

// FuelContainer is a station's tank for a single fuel kind.
//
// Invariants (checked on every mutation):
//   - 0 <= CurrentVolume <= Capacity
//   - 0 <= ReservedVolume <= Capacity - CurrentVolume
//
// ReservedVolume is empty space earmarked for fuel already on its way; it is
// excluded from EmptyUnreservedSpace so the same space is never ordered twice.
type FuelContainer struct {
	Capacity       int
	InitialVolume  int
	CurrentVolume  int
	ReservedVolume int
	TotalConsumed  int // sold to clients
	TotalReceived  int // delivered by tankers
}

// NewFuelContainer creates a container holding initialVolume units.
func NewFuelContainer(capacity, initialVolume int) (*FuelContainer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("container capacity must be positive, got %d", capacity)
	}
	if initialVolume < 0 || initialVolume > capacity {
		return nil, fmt.Errorf("initial volume %d outside [0,%d]", initialVolume, capacity)
	}
	return &FuelContainer{
		Capacity:      capacity,
		InitialVolume: initialVolume,
		CurrentVolume: initialVolume,
	}, nil
}

// EmptySpace is the physical room left in the container.
func (c *FuelContainer) EmptySpace() int {
	return c.Capacity - c.CurrentVolume
}

// EmptyUnreservedSpace is the room not yet promised to an in-transit delivery.
func (c *FuelContainer) EmptyUnreservedSpace() int {
	return c.EmptySpace() - c.ReservedVolume
}

// Take removes volume sold to a client.
func (c *FuelContainer) Take(volume int) {
	if volume < 0 || volume > c.CurrentVolume {
		panic(fmt.Errorf("%w: take %d with %d in stock", ErrCapacityExceeded, volume, c.CurrentVolume))
	}
	c.CurrentVolume -= volume
	c.TotalConsumed += volume
}

// Fill adds delivered volume and releases the matching reservation.
// A fill larger than the outstanding reservation releases all of it.
func (c *FuelContainer) Fill(volume int) {
	if volume < 0 || volume > c.EmptySpace() {
		panic(fmt.Errorf("%w: fill %d with %d empty", ErrCapacityExceeded, volume, c.EmptySpace()))
	}
	c.ReservedVolume -= min(volume, c.ReservedVolume)
	c.CurrentVolume += volume
	c.TotalReceived += volume
}

// ReserveSpace earmarks empty space for a delivery that has been ordered.
func (c *FuelContainer) ReserveSpace(volume int) {
	if volume < 0 || volume > c.EmptyUnreservedSpace() {
		panic(fmt.Errorf("%w: reserve %d with %d unreserved", ErrCapacityExceeded, volume, c.EmptyUnreservedSpace()))
	}
	c.ReservedVolume += volume
}

// UnreserveSpace gives back previously reserved space.
func (c *FuelContainer) UnreserveSpace(volume int) {
	if volume < 0 || volume > c.ReservedVolume {
		panic(fmt.Errorf("%w: unreserve %d with %d reserved", ErrCapacityExceeded, volume, c.ReservedVolume))
	}
	c.ReservedVolume -= volume
}
