// Package influxdb provides InfluxDB connectivity for OfficeGrid Core.
//
// It wraps the official influxdb-client-go v2 library with OfficeGrid-specific
// patterns for connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data storage for:
//   - Energy savings totals (lights-off and reduced HVAC runtime hours)
//   - Office climate state (setpoint, mode, lighting)
//   - Parking occupancy snapshots
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "officegrid",
//	    Bucket: "metrics",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Export savings totals through the accumulator
//	accumulator := energy.NewAccumulator(repo, influxdb.NewSavingsExporter(client), logger)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This reduces network overhead for high-frequency telemetry data.
package influxdb
