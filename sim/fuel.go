package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fuel is a kind of fuel sold by stations. Two Fuel values with the same Name
// are interchangeable.
type Fuel struct {
	Name      string
	UnitPrice decimal.Decimal
}

// NewFuel creates a Fuel from a name and a price per unit.
func NewFuel(name string, unitPrice float64) Fuel {
	return Fuel{Name: name, UnitPrice: decimal.NewFromFloat(unitPrice)}
}

// Equal compares fuels by name only.
func (f Fuel) Equal(other Fuel) bool {
	return f.Name == other.Name
}

func (f Fuel) String() string {
	return f.Name
}

// FuelRegistry is the immutable, ordered catalog of fuel kinds known to a run.
type FuelRegistry struct {
	fuels  []Fuel
	byName map[string]int
}

// NewFuelRegistry builds a registry. Names must be non-empty and unique.
func NewFuelRegistry(fuels ...Fuel) (*FuelRegistry, error) {
	r := &FuelRegistry{
		fuels:  make([]Fuel, 0, len(fuels)),
		byName: make(map[string]int, len(fuels)),
	}
	for _, f := range fuels {
		if f.Name == "" {
			return nil, fmt.Errorf("fuel name must not be empty")
		}
		if _, exists := r.byName[f.Name]; exists {
			return nil, fmt.Errorf("fuel %q declared twice", f.Name)
		}
		if f.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("fuel %q has negative price %s", f.Name, f.UnitPrice)
		}
		r.byName[f.Name] = len(r.fuels)
		r.fuels = append(r.fuels, f)
	}
	return r, nil
}

// Lookup returns the fuel registered under name.
func (r *FuelRegistry) Lookup(name string) (Fuel, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Fuel{}, false
	}
	return r.fuels[idx], true
}

// All returns the catalog in declaration order. The slice is a copy.
func (r *FuelRegistry) All() []Fuel {
	out := make([]Fuel, len(r.fuels))
	copy(out, r.fuels)
	return out
}

// Len returns the number of registered fuel kinds.
func (r *FuelRegistry) Len() int {
	return len(r.fuels)
}
