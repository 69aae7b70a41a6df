// Package api provides the HTTP REST API and WebSocket server for
// OfficeGrid Core.
//
// It exposes parking, room booking, climate, automation, user and
// wellness operations to the office frontend, plus a WebSocket feed of
// facility events for live dashboards.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
