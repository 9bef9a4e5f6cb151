package agent

import (
	"errors"
	"fmt"

	"github.com/tetherlab/tether-go/internal/codec"
	"github.com/tetherlab/tether-go/internal/infrastructure/config"
	"github.com/tetherlab/tether-go/internal/infrastructure/logging"
	"github.com/tetherlab/tether-go/internal/infrastructure/mqtt"
	"github.com/tetherlab/tether-go/internal/plugs"
)

// Domain errors for the agent package.
var (
	// ErrPublishOnInput is returned when publishing through an input plug.
	ErrPublishOnInput = errors.New("agent: cannot publish using an input plug")
)

// Agent is a connected bus participant with a role and id.
type Agent struct {
	role   string
	id     string
	client *mqtt.Client
	log    *logging.Logger
}

// New wraps an established broker connection with the agent identity from
// configuration.
func New(cfg config.AgentConfig, client *mqtt.Client, log *logging.Logger) *Agent {
	return &Agent{
		role:   cfg.Role,
		id:     cfg.ID,
		client: client,
		log:    log.With("component", "agent", "role", cfg.Role, "id", cfg.ID),
	}
}

// Role returns the agent's role (the AgentType segment of its topics).
func (a *Agent) Role() string {
	return a.role
}

// ID returns the agent's id (the GroupOrId segment of its topics).
func (a *Agent) ID() string {
	return a.id
}

// Client exposes the underlying broker connection.
func (a *Agent) Client() *mqtt.Client {
	return a.client
}

// RegisterInput resolves an input plug and subscribes its handler.
//
// A custom override topic that does not conform to the three-part
// convention is accepted with a warning; the subscription still works at
// the broker level, but received topics will not carry a parseable plug
// name.
func (a *Agent) RegisterInput(b *plugs.Builder, handler mqtt.MessageHandler) (*plugs.Definition, error) {
	def, err := b.Build(a.role, a.id)
	if err != nil {
		return nil, fmt.Errorf("resolving input plug: %w", err)
	}
	if def.Direction != plugs.Input {
		return nil, fmt.Errorf("resolving input plug %q: built as %s", def.Name, def.Direction)
	}
	if def.Custom() {
		a.log.Warn("input plug topic is outside the three-part convention",
			"plug", def.Name,
			"topic", def.Topic,
		)
	}

	if err := a.client.Subscribe(def.Topic, def.QoS, handler); err != nil {
		return nil, fmt.Errorf("subscribing plug %q: %w", def.Name, err)
	}
	a.log.Debug("input plug registered", "plug", def.Name, "topic", def.Topic, "qos", def.QoS)
	return def, nil
}

// ResolveOutput resolves an output plug against the agent identity.
// No broker interaction happens until Publish.
func (a *Agent) ResolveOutput(b *plugs.Builder) (*plugs.Definition, error) {
	def, err := b.Build(a.role, a.id)
	if err != nil {
		return nil, fmt.Errorf("resolving output plug: %w", err)
	}
	if def.Direction != plugs.Output {
		return nil, fmt.Errorf("resolving output plug %q: built as %s", def.Name, def.Direction)
	}
	a.log.Debug("output plug resolved", "plug", def.Name, "topic", def.Topic, "qos", def.QoS)
	return def, nil
}

// Publish sends a raw payload through an output plug, using the plug's
// topic, QoS and retain flag. An empty payload is legal.
func (a *Agent) Publish(def *plugs.Definition, payload []byte) error {
	if def.Direction != plugs.Output {
		return fmt.Errorf("%w: %q", ErrPublishOnInput, def.Name)
	}
	if err := a.client.Publish(def.Topic, payload, def.QoS, def.Retain); err != nil {
		return fmt.Errorf("publishing on %q: %w", def.Topic, err)
	}
	return nil
}

// EncodeAndPublish MessagePack-encodes a value and publishes it through an
// output plug.
func (a *Agent) EncodeAndPublish(def *plugs.Definition, value any) error {
	payload, err := codec.Encode(value)
	if err != nil {
		return err
	}
	return a.Publish(def, payload)
}

// PublishRaw publishes directly on a topic, bypassing plug resolution.
// Used by playback, which re-emits messages on their recorded topics.
func (a *Agent) PublishRaw(topic string, payload []byte, qos byte, retained bool) error {
	if err := a.client.Publish(topic, payload, qos, retained); err != nil {
		return fmt.Errorf("publishing on %q: %w", topic, err)
	}
	return nil
}
