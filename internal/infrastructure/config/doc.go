// Package config loads and validates OfficeGrid Core configuration.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by OFFICEGRID_* environment variables. Secrets
// (JWT signing key, MQTT credentials, InfluxDB token) should always come
// from the environment rather than the file.
package config
