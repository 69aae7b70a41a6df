// Package energy tracks cumulative savings attributed to automation:
// hours of HVAC runtime avoided and hours of lights kept off, measured
// against an always-on baseline. The ledger is monotonic; negative
// increments are rejected and totals never decrease. Updated totals are
// mirrored to InfluxDB for dashboards.
package energy
