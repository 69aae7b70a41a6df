// Package automation implements the facility rule engine.
//
// A rule pairs a trigger (a facility event type plus a condition
// matched against the event payload) with an action (lighting, HVAC or
// parking). The Registry manages rule storage with an in-memory cache;
// the Engine subscribes to the event bus and dispatches each event
// against the rules in creation order; the Ticker synthesises the time
// events that drive schedule rules.
//
// Action failures are isolated: a rule whose action errors is logged
// and skipped, and dispatch continues with the remaining matches.
// Actions that shut equipment off credit the energy savings ledger.
package automation
