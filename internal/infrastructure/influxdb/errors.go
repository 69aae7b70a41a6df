package influxdb

import "errors"

// Sentinel errors for the time-series client, checked with errors.Is.
// Write errors surface asynchronously through the error callback, so
// there is no write sentinel.
var (
	ErrNotConnected     = errors.New("influxdb: not connected")
	ErrConnectionFailed = errors.New("influxdb: connection failed")
	ErrDisabled         = errors.New("influxdb: disabled in configuration")
)
