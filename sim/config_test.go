package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFleetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultFleetConfig_IsValid(t *testing.T) {
	cfg := DefaultFleetConfig()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Fuels, 4)
	require.Len(t, cfg.Stations, 2)
	assert.Equal(t, 14, cfg.Stations[0].Count)
	assert.Equal(t, 16, cfg.Stations[1].Count)
	assert.Equal(t, 1440, cfg.RefillInterval)
	assert.Equal(t, IntRange{Min: 1, Max: 6}, cfg.Orders.Car.Interval)
	assert.Equal(t, IntRange{Min: 30, Max: 301}, cfg.Orders.Truck.Volume)
}

func TestLoadFleetConfig_OverlaysDefaults(t *testing.T) {
	// GIVEN a file overriding the refill interval and the arrival range only
	path := writeFleetFile(t, `
refill_interval: 720
tanker:
  arrival:
    min: 30
    max: 61
`)

	// WHEN it is loaded
	cfg, err := LoadFleetConfig(path)

	// THEN the overridden keys change and everything else keeps its default
	require.NoError(t, err)
	assert.Equal(t, 720, cfg.RefillInterval)
	assert.Equal(t, IntRange{Min: 30, Max: 61}, cfg.Tanker.Arrival)
	assert.Equal(t, 40, cfg.Tanker.UnloadTicks)
	assert.Equal(t, 6000, cfg.Tanker.CompartmentCapacity)
	assert.Len(t, cfg.Stations, 2)
}

func TestLoadFleetConfig_StationListReplacesDefault(t *testing.T) {
	path := writeFleetFile(t, `
stations:
  - type: mini
    count: 2
    containers:
      - fuel: "92"
        capacity: 16000
        initial_volume: 8000
`)
	cfg, err := LoadFleetConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Stations, 1)
	g := cfg.Stations[0]
	assert.Equal(t, StationMini, g.Type)
	require.Len(t, g.Containers, 1)
	require.NotNil(t, g.Containers[0].InitialVolume)
	assert.Equal(t, 8000, *g.Containers[0].InitialVolume)
}

func TestLoadFleetConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "refil_interval: 10\n"},
		{"malformed yaml", "stations: [\n"},
		{"invalid value", "refill_interval: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFleetConfig(writeFleetFile(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadFleetConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFleetConfig_Validate(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	tests := []struct {
		name   string
		mutate func(c *FleetConfig)
	}{
		{"no fuels", func(c *FleetConfig) { c.Fuels = nil }},
		{"duplicate fuel", func(c *FleetConfig) { c.Fuels = append(c.Fuels, FuelSpec{Name: "92", Price: 1}) }},
		{"negative price", func(c *FleetConfig) { c.Fuels[0].Price = -1 }},
		{"undeclared truck base", func(c *FleetConfig) { c.TruckFuels.Base = "80" }},
		{"undeclared truck diesel", func(c *FleetConfig) { c.TruckFuels.Diesel = "D2" }},
		{"zero refill interval", func(c *FleetConfig) { c.RefillInterval = 0 }},
		{"negative critical level", func(c *FleetConfig) { c.CriticalFuelLevel = -1 }},
		{"zero compartment", func(c *FleetConfig) { c.Tanker.CompartmentCapacity = 0 }},
		{"empty arrival range", func(c *FleetConfig) { c.Tanker.Arrival = IntRange{Min: 60, Max: 60} }},
		{"zero unload", func(c *FleetConfig) { c.Tanker.UnloadTicks = 0 }},
		{"zero car interval", func(c *FleetConfig) { c.Orders.Car.Interval = IntRange{Min: 0, Max: 5} }},
		{"empty truck volume", func(c *FleetConfig) { c.Orders.Truck.Volume = IntRange{Min: 30, Max: 30} }},
		{"no stations", func(c *FleetConfig) { c.Stations = nil }},
		{"unknown station type", func(c *FleetConfig) { c.Stations[0].Type = "kiosk" }},
		{"negative count", func(c *FleetConfig) { c.Stations[0].Count = -1 }},
		{"no containers", func(c *FleetConfig) { c.Stations[0].Containers = nil }},
		{"undeclared container fuel", func(c *FleetConfig) { c.Stations[0].Containers[0].Fuel = "80" }},
		{"zero capacity", func(c *FleetConfig) { c.Stations[1].Containers[1].Capacity = 0 }},
		{"initial above capacity", func(c *FleetConfig) { c.Stations[1].Containers[0].InitialVolume = intPtr(16001) }},
		{"truck base not stocked", func(c *FleetConfig) { c.Stations[1].Containers[0].Fuel = "98" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFleetConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFleetConfig_Profiles(t *testing.T) {
	cfg := DefaultFleetConfig()
	cfg.Orders.Car.Interval = IntRange{Min: 2, Max: 4}

	car := cfg.CarProfile()
	assert.Equal(t, ClientCar, car.Kind)
	assert.Equal(t, IntRange{Min: 2, Max: 4}, car.Interval)

	truck := cfg.TruckProfile()
	assert.Equal(t, BaseOrDieselChoice{Base: "92", Diesel: "DT"}, truck.Choice)

	params := cfg.StationParams()
	assert.Equal(t, 6000, params.CompartmentCapacity)
	assert.Equal(t, 1000, params.CriticalFuelLevel)
	assert.Equal(t, 90, cfg.TankerParams().ReturnTicks)
}
