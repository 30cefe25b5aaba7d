// Package telemetry exposes fleet snapshots as Prometheus metrics.
package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fuel-logistics/fuel-sim/sim"
)

// SnapshotSource is anything that can produce a consistent fleet snapshot.
// *sim.Simulator implements it.
type SnapshotSource interface {
	Snapshot() sim.FleetSnapshot
}

// Collector reads one snapshot per scrape, so every sample of a scrape
// describes the same tick.
type Collector struct {
	source SnapshotSource

	clock        *prometheus.Desc
	revenue      *prometheus.Desc
	orders       *prometheus.Desc
	served       *prometheus.Desc
	tankerCalls  *prometheus.Desc
	volume       *prometheus.Desc
	reserved     *prometheus.Desc
	consumed     *prometheus.Desc
	received     *prometheus.Desc
	tankers      *prometheus.Desc
	tankersBusy  *prometheus.Desc
	tankerDrives *prometheus.Desc
}

// NewCollector creates a Collector over source.
func NewCollector(source SnapshotSource) *Collector {
	stationLabels := []string{"station", "type"}
	clientLabels := []string{"station", "type", "client"}
	containerLabels := []string{"station", "type", "fuel"}
	return &Collector{
		source:       source,
		clock:        prometheus.NewDesc("fuelsim_clock_ticks", "Ticks completed by the simulation", nil, nil),
		revenue:      prometheus.NewDesc("fuelsim_station_revenue", "Station revenue", stationLabels, nil),
		orders:       prometheus.NewDesc("fuelsim_station_orders_total", "Client orders registered", clientLabels, nil),
		served:       prometheus.NewDesc("fuelsim_station_served_total", "Clients that received fuel", clientLabels, nil),
		tankerCalls:  prometheus.NewDesc("fuelsim_station_tanker_calls_total", "Refill batches raised by the station", stationLabels, nil),
		volume:       prometheus.NewDesc("fuelsim_container_volume", "Fuel currently in the container", containerLabels, nil),
		reserved:     prometheus.NewDesc("fuelsim_container_reserved", "Empty space reserved for deliveries in transit", containerLabels, nil),
		consumed:     prometheus.NewDesc("fuelsim_container_consumed_total", "Fuel sold from the container", containerLabels, nil),
		received:     prometheus.NewDesc("fuelsim_container_received_total", "Fuel delivered into the container", containerLabels, nil),
		tankers:      prometheus.NewDesc("fuelsim_tankers", "Tankers in the pool", []string{"compartments"}, nil),
		tankersBusy:  prometheus.NewDesc("fuelsim_tankers_busy", "Tankers with a running phase", []string{"compartments"}, nil),
		tankerDrives: prometheus.NewDesc("fuelsim_tanker_drives_total", "Completed delivery runs", []string{"compartments"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.clock, c.revenue, c.orders, c.served, c.tankerCalls,
		c.volume, c.reserved, c.consumed, c.received,
		c.tankers, c.tankersBusy, c.tankerDrives,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.clock, prometheus.GaugeValue, float64(snap.Clock))

	for _, st := range snap.Stations {
		id, typ := strconv.Itoa(st.ID), string(st.Type)
		ch <- prometheus.MustNewConstMetric(c.revenue, prometheus.GaugeValue, st.Revenue.InexactFloat64(), id, typ)
		ch <- prometheus.MustNewConstMetric(c.orders, prometheus.CounterValue, float64(st.TotalCarOrders), id, typ, string(sim.ClientCar))
		ch <- prometheus.MustNewConstMetric(c.orders, prometheus.CounterValue, float64(st.TotalTruckOrders), id, typ, string(sim.ClientTruck))
		ch <- prometheus.MustNewConstMetric(c.served, prometheus.CounterValue, float64(st.ServedCarClients), id, typ, string(sim.ClientCar))
		ch <- prometheus.MustNewConstMetric(c.served, prometheus.CounterValue, float64(st.ServedTruckClients), id, typ, string(sim.ClientTruck))
		ch <- prometheus.MustNewConstMetric(c.tankerCalls, prometheus.CounterValue, float64(st.TankerCalls), id, typ)
		for _, ct := range st.Containers {
			ch <- prometheus.MustNewConstMetric(c.volume, prometheus.GaugeValue, float64(ct.CurrentVolume), id, typ, ct.Fuel)
			ch <- prometheus.MustNewConstMetric(c.reserved, prometheus.GaugeValue, float64(ct.ReservedVolume), id, typ, ct.Fuel)
			ch <- prometheus.MustNewConstMetric(c.consumed, prometheus.CounterValue, float64(ct.TotalConsumed), id, typ, ct.Fuel)
			ch <- prometheus.MustNewConstMetric(c.received, prometheus.CounterValue, float64(ct.TotalReceived), id, typ, ct.Fuel)
		}
	}

	type pool struct{ count, busy, drives int }
	bySize := map[int]*pool{}
	for _, t := range snap.Tankers {
		p, ok := bySize[t.TankCount]
		if !ok {
			p = &pool{}
			bySize[t.TankCount] = p
		}
		p.count++
		p.drives += t.DrivesCompleted
		if t.Busy {
			p.busy++
		}
	}
	for size, p := range bySize {
		label := strconv.Itoa(size)
		ch <- prometheus.MustNewConstMetric(c.tankers, prometheus.GaugeValue, float64(p.count), label)
		ch <- prometheus.MustNewConstMetric(c.tankersBusy, prometheus.GaugeValue, float64(p.busy), label)
		ch <- prometheus.MustNewConstMetric(c.tankerDrives, prometheus.CounterValue, float64(p.drives), label)
	}
}
