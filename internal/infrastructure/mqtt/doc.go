// Package mqtt provides MQTT client connectivity for OfficeGrid Core.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// OfficeGrid uses MQTT to talk to the building: lighting and HVAC
// commands go out on officegrid/command/*, motion sensors report in on
// officegrid/sensor/motion/{area}, and facility events are mirrored on
// officegrid/core/event/* for external observers. The broker
// (Mosquitto) decouples Core from the hardware integrations.
//
//	OfficeGrid Core ↔ MQTT Broker ↔ Building hardware / sensors
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Bridge motion sensors onto the facility event bus
//	err = mqtt.SubscribeMotion(client, bus, 1)
//
//	// Publish a lighting command
//	commander := mqtt.NewCommander(client, 1)
//	err = commander.SendLights(ctx, true)
package mqtt
