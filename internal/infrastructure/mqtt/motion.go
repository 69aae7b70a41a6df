package mqtt

import (
	"context"
	"fmt"
	"strings"

	"github.com/officegrid/officegrid-core/internal/events"
)

// EventPublisher receives facility events parsed from sensor traffic.
// The event bus satisfies this.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event) bool
}

// SubscribeMotion bridges motion sensor traffic onto the facility bus.
// Each message on officegrid/sensor/motion/{area} becomes a motion
// event for that area; the payload itself is ignored.
//
// The subscription survives reconnects like any other.
func SubscribeMotion(client *Client, bus EventPublisher, qos byte) error {
	topic := Topics{}.AllSensorMotion()
	err := client.Subscribe(topic, qos, func(topic string, _ []byte) error {
		area := motionArea(topic)
		if area == "" {
			return fmt.Errorf("motion topic %q has no area segment", topic)
		}
		bus.Publish(context.Background(), events.Motion(area))
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribing to motion sensors: %w", err)
	}
	return nil
}

// motionArea extracts the area from a motion sensor topic.
func motionArea(topic string) string {
	idx := strings.LastIndex(topic, "/")
	if idx < 0 || idx == len(topic)-1 {
		return ""
	}
	return topic[idx+1:]
}
