package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Commander publishes climate and lighting commands to building
// hardware. It satisfies the climate package's Commander interface.
//
// Commands are advisory: the persisted office state is authoritative
// and a failed publish is reported but never rolls anything back.
type Commander struct {
	client *Client
	qos    byte
}

// NewCommander creates a hardware commander on top of a connected client.
func NewCommander(client *Client, qos byte) *Commander {
	return &Commander{client: client, qos: qos}
}

// SendHVAC publishes an HVAC command with the target mode and setpoint.
func (c *Commander) SendHVAC(ctx context.Context, mode string, temperature int) error {
	payload, err := json.Marshal(map[string]any{
		"mode":        mode,
		"temperature": temperature,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshalling hvac command: %w", err)
	}
	return c.publish(ctx, Topics{}.CommandHVAC(), payload)
}

// SendLights publishes a lighting command.
func (c *Commander) SendLights(ctx context.Context, on bool) error {
	payload, err := json.Marshal(map[string]any{
		"on":        on,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshalling lights command: %w", err)
	}
	return c.publish(ctx, Topics{}.CommandLights(), payload)
}

func (c *Commander) publish(ctx context.Context, topic string, payload []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return c.client.Publish(topic, payload, c.qos, false)
}
