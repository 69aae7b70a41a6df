// Package parking manages the office parking spots.
//
// Each spot moves through a small state machine:
//
//	available -> reserved -> occupied -> available
//
// with a walk-up shortcut from available straight to occupied. A spot
// has an owner exactly when it is held. Transitions are serialised by
// the Machine, validated against the current state, persisted, and only
// then reflected in the cache, so two users can never win the same spot.
//
// Checking in emits a parking_checkin event onto the facility bus,
// which lets automation rules react to arrivals.
package parking
