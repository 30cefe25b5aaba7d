package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FleetConfig is the full setup of a run: fuel catalog, stations, tanker
// timings and client profiles. Loadable from YAML via LoadFleetConfig.
type FleetConfig struct {
	Fuels             []FuelSpec     `yaml:"fuels"`
	TruckFuels        TruckFuelSpec  `yaml:"truck_fuels"`
	Stations          []StationGroup `yaml:"stations"`
	RefillInterval    int            `yaml:"refill_interval"`     // ticks between scheduled refill checks
	CriticalFuelLevel int            `yaml:"critical_fuel_level"` // volume at or below which a sale triggers a refill check
	Tanker            TankerSpec     `yaml:"tanker"`
	Orders            OrdersSpec     `yaml:"orders"`
}

// FuelSpec declares a fuel kind and its price per unit.
type FuelSpec struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

// TruckFuelSpec names the fuels truck clients pick between.
type TruckFuelSpec struct {
	Base   string `yaml:"base"`
	Diesel string `yaml:"diesel"`
}

// StationGroup declares Count identical stations.
type StationGroup struct {
	Type       StationType     `yaml:"type"`
	Count      int             `yaml:"count"`
	Containers []ContainerSpec `yaml:"containers"`
}

// ContainerSpec declares one container of a station. A nil InitialVolume
// means the container starts full.
type ContainerSpec struct {
	Fuel          string `yaml:"fuel"`
	Capacity      int    `yaml:"capacity"`
	InitialVolume *int   `yaml:"initial_volume,omitempty"`
}

// TankerSpec groups tanker sizes and timings.
type TankerSpec struct {
	CompartmentCapacity int      `yaml:"compartment_capacity"`
	Arrival             IntRange `yaml:"arrival"`
	UnloadTicks         int      `yaml:"unload_ticks"`
	ReturnTicks         int      `yaml:"return_ticks"`
}

// OrdersSpec groups the client profiles.
type OrdersSpec struct {
	Car   OrderSpec `yaml:"car"`
	Truck OrderSpec `yaml:"truck"`
}

// OrderSpec parameterizes one client kind. Both ranges are half-open.
type OrderSpec struct {
	Interval IntRange `yaml:"interval"`
	Volume   IntRange `yaml:"volume"`
}

// DefaultFleetConfig returns the reference fleet: 14 stationary stations
// selling four fuels and 16 mini stations selling two.
func DefaultFleetConfig() FleetConfig {
	car := CarProfile()
	truck := TruckProfile("92", "DT")
	return FleetConfig{
		Fuels: []FuelSpec{
			{Name: "92", Price: 45.6},
			{Name: "95", Price: 48.2},
			{Name: "98", Price: 50.3},
			{Name: "DT", Price: 51.5},
		},
		TruckFuels: TruckFuelSpec{Base: "92", Diesel: "DT"},
		Stations: []StationGroup{
			{
				Type:  StationStationary,
				Count: 14,
				Containers: []ContainerSpec{
					{Fuel: "92", Capacity: 30000},
					{Fuel: "95", Capacity: 16000},
					{Fuel: "98", Capacity: 16000},
					{Fuel: "DT", Capacity: 30000},
				},
			},
			{
				Type:  StationMini,
				Count: 16,
				Containers: []ContainerSpec{
					{Fuel: "92", Capacity: 16000},
					{Fuel: "95", Capacity: 15000},
				},
			},
		},
		RefillInterval:    24 * 60,
		CriticalFuelLevel: 1000,
		Tanker: TankerSpec{
			CompartmentCapacity: 6000,
			Arrival:             IntRange{Min: 60, Max: 121},
			UnloadTicks:         40,
			ReturnTicks:         90,
		},
		Orders: OrdersSpec{
			Car:   OrderSpec{Interval: car.Interval, Volume: car.Volume},
			Truck: OrderSpec{Interval: truck.Interval, Volume: truck.Volume},
		},
	}
}

// LoadFleetConfig reads a YAML fleet file on top of DefaultFleetConfig:
// keys absent from the file keep their default value, lists present in the
// file replace the default list. Unknown keys are an error.
func LoadFleetConfig(path string) (*FleetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fleet config: %w", err)
	}
	cfg := DefaultFleetConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing fleet config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fleet config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks names, references and ranges.
func (c *FleetConfig) Validate() error {
	if len(c.Fuels) == 0 {
		return fmt.Errorf("no fuels declared")
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	known := make(map[string]bool, len(c.Fuels))
	for _, f := range c.Fuels {
		known[f.Name] = true
	}
	if !known[c.TruckFuels.Base] {
		return fmt.Errorf("truck base fuel %q is not declared", c.TruckFuels.Base)
	}
	if c.TruckFuels.Diesel != "" && !known[c.TruckFuels.Diesel] {
		return fmt.Errorf("truck diesel fuel %q is not declared", c.TruckFuels.Diesel)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("refill_interval must be positive, got %d", c.RefillInterval)
	}
	if c.CriticalFuelLevel < 0 {
		return fmt.Errorf("critical_fuel_level must be non-negative, got %d", c.CriticalFuelLevel)
	}
	if c.Tanker.CompartmentCapacity <= 0 {
		return fmt.Errorf("tanker compartment_capacity must be positive, got %d", c.Tanker.CompartmentCapacity)
	}
	if !c.Tanker.Arrival.Valid() || c.Tanker.Arrival.Min <= 0 {
		return fmt.Errorf("tanker arrival range %s must be non-empty and positive", c.Tanker.Arrival)
	}
	if c.Tanker.UnloadTicks <= 0 || c.Tanker.ReturnTicks <= 0 {
		return fmt.Errorf("tanker unload_ticks and return_ticks must be positive")
	}
	orders := []struct {
		kind ClientKind
		spec OrderSpec
	}{{ClientCar, c.Orders.Car}, {ClientTruck, c.Orders.Truck}}
	for _, o := range orders {
		if !o.spec.Interval.Valid() || o.spec.Interval.Min <= 0 {
			return fmt.Errorf("%s order interval %s must be non-empty and positive", o.kind, o.spec.Interval)
		}
		if !o.spec.Volume.Valid() || o.spec.Volume.Min < 0 {
			return fmt.Errorf("%s order volume %s must be non-empty and non-negative", o.kind, o.spec.Volume)
		}
	}
	if len(c.Stations) == 0 {
		return fmt.Errorf("no stations declared")
	}
	for i, g := range c.Stations {
		if !ValidStationTypes[g.Type] {
			return fmt.Errorf("station group %d: unknown type %q", i, g.Type)
		}
		if g.Count < 0 {
			return fmt.Errorf("station group %d: count must be non-negative, got %d", i, g.Count)
		}
		if len(g.Containers) == 0 {
			return fmt.Errorf("station group %d: no containers", i)
		}
		stocked := make(map[string]bool, len(g.Containers))
		for _, cs := range g.Containers {
			if !known[cs.Fuel] {
				return fmt.Errorf("station group %d: fuel %q is not declared", i, cs.Fuel)
			}
			if stocked[cs.Fuel] {
				return fmt.Errorf("station group %d: fuel %q stocked twice", i, cs.Fuel)
			}
			stocked[cs.Fuel] = true
			if cs.Capacity <= 0 {
				return fmt.Errorf("station group %d: %q capacity must be positive", i, cs.Fuel)
			}
			if cs.InitialVolume != nil && (*cs.InitialVolume < 0 || *cs.InitialVolume > cs.Capacity) {
				return fmt.Errorf("station group %d: %q initial volume %d outside [0,%d]", i, cs.Fuel, *cs.InitialVolume, cs.Capacity)
			}
		}
		if !stocked[c.TruckFuels.Base] {
			return fmt.Errorf("station group %d does not stock truck base fuel %q", i, c.TruckFuels.Base)
		}
		if g.Count == 0 {
			logrus.Warnf("station group %d (%s) has count 0 and is skipped", i, g.Type)
		}
	}
	return nil
}

// Registry builds the fuel catalog.
func (c *FleetConfig) Registry() (*FuelRegistry, error) {
	fuels := make([]Fuel, 0, len(c.Fuels))
	for _, f := range c.Fuels {
		fuels = append(fuels, NewFuel(f.Name, f.Price))
	}
	return NewFuelRegistry(fuels...)
}

// CarProfile returns the configured car client profile.
func (c *FleetConfig) CarProfile() OrderProfile {
	p := CarProfile()
	p.Interval, p.Volume = c.Orders.Car.Interval, c.Orders.Car.Volume
	return p
}

// TruckProfile returns the configured truck client profile.
func (c *FleetConfig) TruckProfile() OrderProfile {
	p := TruckProfile(c.TruckFuels.Base, c.TruckFuels.Diesel)
	p.Interval, p.Volume = c.Orders.Truck.Interval, c.Orders.Truck.Volume
	return p
}

// TankerParams returns the configured tanker parameters.
func (c *FleetConfig) TankerParams() TankerParams {
	return TankerParams{
		CompartmentCapacity: c.Tanker.CompartmentCapacity,
		Arrival:             c.Tanker.Arrival,
		UnloadTicks:         c.Tanker.UnloadTicks,
		ReturnTicks:         c.Tanker.ReturnTicks,
	}
}

// StationParams returns the refill policy shared by all stations.
func (c *FleetConfig) StationParams() StationParams {
	return StationParams{
		RefillInterval:      c.RefillInterval,
		CriticalFuelLevel:   c.CriticalFuelLevel,
		CompartmentCapacity: c.Tanker.CompartmentCapacity,
	}
}
