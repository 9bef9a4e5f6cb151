package plugs

import (
	"errors"
	"fmt"

	"github.com/tetherlab/tether-go/internal/topics"
)

// Direction distinguishes subscribing plugs from publishing plugs.
type Direction int

const (
	// Input plugs subscribe to a pattern topic.
	Input Direction = iota
	// Output plugs publish on a concrete topic.
	Output
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// defaultQoS is used when a plug does not specify a QoS level.
const defaultQoS = 1

// Domain errors for the plugs package.
var (
	// ErrRetainOnInput is returned when a retain flag is set on an input
	// plug; retain is a publish-side property.
	ErrRetainOnInput = errors.New("plugs: cannot set retain flag on an input plug")

	// ErrInvalidQoS is returned for QoS levels outside 0..2.
	ErrInvalidQoS = errors.New("plugs: qos must be 0, 1, or 2")
)

// Definition is a resolved, validated plug ready for use. Obtain one by
// calling Build on a Builder; the zero value is not meaningful.
type Definition struct {
	// Name is the plug name, which becomes the PlugName topic segment
	// unless a custom topic override is used.
	Name string

	// Direction is Input (subscribe) or Output (publish).
	Direction Direction

	// Topic is the resolved topic string: a pattern for input plugs,
	// a concrete topic for output plugs.
	Topic string

	// QoS is the MQTT quality-of-service level for this plug.
	QoS byte

	// Retain marks output messages as broker-retained.
	Retain bool

	// Tether is the parsed three-part form of Topic, nil when a custom
	// override topic outside the convention was supplied.
	Tether *topics.ThreePartTopic
}

// Custom reports whether the plug uses a topic outside the three-part
// convention.
func (d *Definition) Custom() bool {
	return d.Tether == nil
}

// Builder accumulates plug options. Entry points are NewInput and
// NewOutput; the chain ends with Build.
//
//	def, err := plugs.NewInput("scans").Role("lidar").QoS(2).Build("", "")
type Builder struct {
	name      string
	direction Direction

	qos           int
	qosSet        bool
	role          string
	id            string
	topicOverride string
	retain        bool
	retainSet     bool
}

// NewInput starts a builder for a subscribing plug.
func NewInput(name string) *Builder {
	return &Builder{name: name, direction: Input}
}

// NewOutput starts a builder for a publishing plug.
func NewOutput(name string) *Builder {
	return &Builder{name: name, direction: Output}
}

// QoS overrides the default QoS level (1). Values outside 0..2,
// negative ones included, fail at Build.
func (b *Builder) QoS(qos int) *Builder {
	b.qos = qos
	b.qosSet = true
	return b
}

// Role overrides the AgentType segment of the generated topic.
// Ignored when a full topic override is supplied.
func (b *Builder) Role(role string) *Builder {
	b.role = role
	return b
}

// ID overrides the GroupOrId segment of the generated topic.
// Ignored when a full topic override is supplied.
func (b *Builder) ID(id string) *Builder {
	b.id = id
	return b
}

// Topic overrides the entire generated topic. The value is not required to
// follow the three-part convention; callers that pass broker-grammar
// patterns such as "#" are assumed to know what they are doing.
func (b *Builder) Topic(topic string) *Builder {
	b.topicOverride = topic
	return b
}

// Retain marks output messages as broker-retained. Setting it on an input
// plug fails at Build.
func (b *Builder) Retain(retain bool) *Builder {
	b.retain = retain
	b.retainSet = true
	return b
}

// Build resolves the options into a Definition, substituting defaults for
// anything not customised.
//
// agentRole and agentID supply the publishing identity for output plugs
// whose role/id were not overridden; they are unused for input plugs,
// which default to wildcards.
//
// Wildcard plug names are rejected here with topics.ErrInvalidPattern, so a
// misconfigured plug never reaches the broker (pre-validation at
// registration time rather than per-message).
func (b *Builder) Build(agentRole, agentID string) (*Definition, error) {
	if b.direction == Input && b.retainSet {
		return nil, fmt.Errorf("%w: %q", ErrRetainOnInput, b.name)
	}

	qos := defaultQoS
	if b.qosSet {
		if b.qos < 0 || b.qos > 2 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidQoS, b.qos)
		}
		qos = b.qos
	}

	def := &Definition{
		Name:      b.name,
		Direction: b.direction,
		QoS:       byte(qos),
		Retain:    b.retain,
	}

	if b.topicOverride != "" {
		def.Topic = b.topicOverride
		// A custom topic is accepted even outside the convention, but
		// keep the parsed form when it does conform.
		if t, err := topics.ParsePattern(b.topicOverride); err == nil {
			def.Tether = &t
		}
		return def, nil
	}

	switch b.direction {
	case Input:
		t, err := topics.NewForSubscribe(b.role, b.id, b.name)
		if err != nil {
			return nil, err
		}
		def.Topic = t.String()
		def.Tether = &t
	case Output:
		role, id := agentRole, agentID
		if b.role != "" {
			role = b.role
		}
		if b.id != "" {
			id = b.id
		}
		t, err := topics.NewForPublish(role, id, b.name)
		if err != nil {
			return nil, err
		}
		def.Topic = t.String()
		def.Tether = &t
	}

	return def, nil
}
