package influxdb

import (
	"context"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/officegrid/officegrid-core/internal/energy"
)

// WriteSavings records the current energy savings totals.
//
// Both values are cumulative hours since first boot; downstream
// dashboards derive rates from successive points.
//
// The write is non-blocking; data is batched and sent asynchronously.
func (c *Client) WriteSavings(hvacReducedHours, lightsOffHours float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"energy_savings",
		map[string]string{
			"ledger": "office",
		},
		map[string]interface{}{
			"hvac_runtime_reduced_hours": hvacReducedHours,
			"lights_off_hours":           lightsOffHours,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteClimate records a snapshot of the office climate state.
//
// Parameters:
//   - temperature: HVAC setpoint in degrees Celsius
//   - mode: HVAC mode ("heat", "cool", "off")
//   - lightsOn: current lighting state
func (c *Client) WriteClimate(temperature int, mode string, lightsOn bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"climate",
		map[string]string{
			"mode": mode,
		},
		map[string]interface{}{
			"temperature": temperature,
			"lights_on":   lightsOn,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteParkingStats records a parking occupancy snapshot.
func (c *Client) WriteParkingStats(available, reserved, occupied int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"parking",
		nil,
		map[string]interface{}{
			"available": available,
			"reserved":  reserved,
			"occupied":  occupied,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "core-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}

// SavingsExporter adapts the InfluxDB client to the energy package's
// Exporter interface. Exports are fire-and-forget: a disconnected
// client drops the point and the persisted ledger remains authoritative.
type SavingsExporter struct {
	client *Client
}

// NewSavingsExporter creates an exporter backed by a connected client.
func NewSavingsExporter(client *Client) *SavingsExporter {
	return &SavingsExporter{client: client}
}

// ExportSavings writes the ledger totals as a time-series point.
func (e *SavingsExporter) ExportSavings(ctx context.Context, s energy.Savings) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	e.client.WriteSavings(s.HVACRuntimeReducedHours, s.LightsOffHours)
	return nil
}
