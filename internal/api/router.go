package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/officegrid/officegrid-core/internal/metrics"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Prometheus metrics (no auth; scraped by the monitoring stack)
	metrics.Register()
	r.Handle("/metrics", metrics.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)

			// WS ticket requires authentication - user must be logged in to request a ticket
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			// Parking endpoints
			r.Route("/parking", func(r chi.Router) {
				r.Get("/spots", s.handleListSpots)
				r.Get("/available", s.handleAvailableSpots)
				r.Get("/stats", s.handleParkingStats)
				r.Get("/my-reservations", s.handleMyReservations)
				r.Post("/reserve", s.handleReserve)
				r.Post("/guest-pass", s.handleGuestPass)
				r.Post("/checkin", s.handleCheckIn)
				r.Post("/unreserve", s.handleUnreserve)
				r.Post("/checkout", s.handleCheckOut)

				r.Group(func(r chi.Router) {
					r.Use(s.adminMiddleware)
					r.Post("/clear", s.handleClearSpot)
					r.Get("/violations", s.handleViolations)
				})
			})

			// Room booking endpoints
			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", s.handleListRooms)
				r.Get("/week", s.handleWeekOverview)
				r.Get("/my-bookings", s.handleMyBookings)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/status", s.handleRoomStatus)
					r.Get("/week", s.handleWeekSchedule)
					r.Post("/book", s.handleBook)
				})
			})
			r.Delete("/bookings/{id}", s.handleCancelBooking)

			// Climate endpoints
			r.Route("/climate", func(r chi.Router) {
				r.Get("/", s.handleClimateState)
				r.Post("/temperature", s.handleSetTemperature)
				r.Post("/mode", s.handleSetMode)
				r.Post("/lights", s.handleSetLights)
			})

			// Automation endpoints
			r.Route("/automation", func(r chi.Router) {
				r.Get("/energy-savings", s.handleEnergySavings)
				r.Get("/rules", s.handleListRules)

				r.Group(func(r chi.Router) {
					r.Use(s.adminMiddleware)
					r.Post("/rules", s.handleCreateRule)
					r.Post("/rules/{id}/toggle", s.handleToggleRule)
					r.Post("/rules/{id}/test", s.handleTestRule)
					r.Delete("/rules/{id}", s.handleDeleteRule)
					r.Post("/motion", s.handleInjectMotion)
				})
			})

			// Wellness endpoints
			r.Route("/wellness", func(r chi.Router) {
				r.Post("/checkin", s.handleWellnessCheckIn)
				r.Get("/history", s.handleWellnessHistory)
				r.Get("/air-quality", s.handleAirQuality)
				r.Get("/noise-levels", s.handleNoiseLevels)
			})

			// User management (admin only)
			r.Route("/users", func(r chi.Router) {
				r.Use(s.adminMiddleware)
				r.Get("/", s.handleListUsers)
				r.Post("/", s.handleCreateUser)
				r.Post("/set-role", s.handleSetRole)
				r.Post("/change-password", s.handleChangePassword)
				r.Delete("/{username}", s.handleDeleteUser)
			})

			// Audit trail (admin only)
			r.With(s.adminMiddleware).Get("/audit", s.handleListAudit)

			// WebSocket (auth via ticket, validated in handler)
			r.Get("/ws", s.handleWebSocket)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
