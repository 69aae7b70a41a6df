// Package events provides the in-process facility event bus.
//
// Events are transient: they exist only for the duration of a dispatch
// and are never persisted. Producers (parking check-ins, logins, motion
// sensor proxies, the minute scheduler) publish onto a single Bus; the
// automation rule engine subscribes and matches rules against each
// event.
//
// Dispatch is synchronous and bounded. A handler that causes another
// event of the same type to be published on the same call path would
// otherwise recurse without limit, so the bus drops such nested
// publishes and logs them. Cross-type nesting (for example a time event
// whose action produces a parking event) is allowed.
package events
