package mqtt

import "fmt"

// Topic prefixes for the OfficeGrid MQTT namespace.
//
// Scheme: officegrid/{category}/{...}. Commands go out to building
// hardware, sensor readings come in, and core events mirror the
// in-process facility bus for external observers.
const (
	// TopicPrefix is the base for all OfficeGrid topics.
	TopicPrefix = "officegrid"

	// TopicPrefixCore is the base for core-originated topics.
	TopicPrefixCore = "officegrid/core"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "officegrid/system"
)

// Topics provides builders for OfficeGrid MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	cmdTopic := topics.CommandLights()
//	// Returns: "officegrid/command/lights"
type Topics struct{}

// CommandLights returns the topic for lighting commands to hardware.
//
// Example: officegrid/command/lights
func (Topics) CommandLights() string {
	return fmt.Sprintf("%s/command/lights", TopicPrefix)
}

// CommandHVAC returns the topic for HVAC commands to hardware.
//
// Example: officegrid/command/hvac
func (Topics) CommandHVAC() string {
	return fmt.Sprintf("%s/command/hvac", TopicPrefix)
}

// SensorMotion returns the topic a motion sensor publishes on.
//
// Example: officegrid/sensor/motion/main_office
func (Topics) SensorMotion(area string) string {
	return fmt.Sprintf("%s/sensor/motion/%s", TopicPrefix, area)
}

// AllSensorMotion returns a pattern matching all motion sensors.
//
// Pattern: officegrid/sensor/motion/+
func (Topics) AllSensorMotion() string {
	return fmt.Sprintf("%s/sensor/motion/+", TopicPrefix)
}

// CoreEvent returns the topic facility events are mirrored on.
//
// Example: officegrid/core/event/parking_checkin
func (Topics) CoreEvent(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefixCore, eventType)
}

// AllCoreEvents returns a pattern matching all mirrored facility events.
//
// Pattern: officegrid/core/event/+
func (Topics) AllCoreEvents() string {
	return fmt.Sprintf("%s/event/+", TopicPrefixCore)
}

// SystemStatus returns the system status topic. Online, offline and
// Last Will messages are published here, retained.
//
// Example: officegrid/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllTopics returns a pattern matching all OfficeGrid topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: officegrid/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
