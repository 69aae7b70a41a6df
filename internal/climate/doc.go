// Package climate manages the office-wide climate and lighting state:
// a temperature setpoint bounded to [10, 30] degrees, an HVAC mode
// (heat, cool, off) and a lights flag. Changes are persisted first and
// then forwarded to building hardware over MQTT as advisory commands.
package climate
