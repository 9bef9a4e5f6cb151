package topics

import (
	"fmt"
	"strings"
)

// Topic structure constants.
const (
	// Separator joins the three topic segments.
	Separator = "/"

	// Wildcard is the single-level wildcard token. It may appear in the
	// AgentType and GroupOrId positions of a pattern, never in PlugName.
	Wildcard = "+"

	// segmentCount is the fixed number of segments in a valid topic.
	segmentCount = 3
)

// Segment is one addressable position of a pattern topic. It is a closed
// two-variant value: either a concrete string or the single-level wildcard.
// The zero value is an empty concrete segment, which never appears in a
// valid topic.
type Segment struct {
	value    string
	wildcard bool
}

// Any returns the wildcard segment.
func Any() Segment {
	return Segment{wildcard: true}
}

// Exact returns a concrete segment with the given value.
func Exact(value string) Segment {
	return Segment{value: value}
}

// IsWildcard reports whether the segment is the single-level wildcard.
func (s Segment) IsWildcard() bool {
	return s.wildcard
}

// Value returns the concrete value, or "" for a wildcard segment.
func (s Segment) Value() string {
	if s.wildcard {
		return ""
	}
	return s.value
}

// String returns the wire form of the segment: "+" for a wildcard,
// the literal value otherwise.
func (s Segment) String() string {
	if s.wildcard {
		return Wildcard
	}
	return s.value
}

// matches reports whether a concrete segment value satisfies this segment.
// Comparison is case-sensitive and byte-for-byte.
func (s Segment) matches(concrete string) bool {
	return s.wildcard || s.value == concrete
}

// segmentFromString maps a raw segment string to its Segment value,
// folding the wildcard token into the wildcard variant.
func segmentFromString(raw string) Segment {
	if raw == Wildcard {
		return Any()
	}
	return Exact(raw)
}

// ThreePartTopic is a validated three-segment topic. The first two segments
// may be wildcards (making this a pattern topic); the plug name is a plain
// string because it must always be concrete.
type ThreePartTopic struct {
	agentType Segment
	groupOrID Segment
	plugName  string
}

// NewForPublish builds a fully concrete topic for publishing.
// All three segments must be non-empty and free of wildcards.
func NewForPublish(role, id, plugName string) (ThreePartTopic, error) {
	for _, seg := range [...]string{role, id, plugName} {
		if err := validateLiteral(seg); err != nil {
			return ThreePartTopic{}, err
		}
	}
	return ThreePartTopic{
		agentType: Exact(role),
		groupOrID: Exact(id),
		plugName:  plugName,
	}, nil
}

// NewForSubscribe builds a pattern topic for subscribing. An empty role or
// id becomes the wildcard, so NewForSubscribe("", "", "temperature")
// produces the default pattern "+/+/temperature". The plug name is
// mandatory and concrete.
func NewForSubscribe(role, id, plugName string) (ThreePartTopic, error) {
	if plugName == Wildcard {
		return ThreePartTopic{}, ErrInvalidPattern
	}
	if err := validateLiteral(plugName); err != nil {
		return ThreePartTopic{}, err
	}
	t := ThreePartTopic{
		agentType: Any(),
		groupOrID: Any(),
		plugName:  plugName,
	}
	if role != "" {
		t.agentType = segmentFromString(role)
	}
	if id != "" {
		t.groupOrID = segmentFromString(id)
	}
	return t, nil
}

// ParsePattern parses a pattern topic string. The AgentType and GroupOrId
// segments may each be the wildcard "+"; the PlugName segment must be
// concrete (ErrInvalidPattern otherwise).
func ParsePattern(pattern string) (ThreePartTopic, error) {
	parts := strings.Split(pattern, Separator)
	if len(parts) != segmentCount {
		return ThreePartTopic{}, fmt.Errorf("%w: %q has %d", ErrMalformedTopic, pattern, len(parts))
	}
	if parts[2] == Wildcard {
		return ThreePartTopic{}, ErrInvalidPattern
	}
	for _, p := range parts {
		if p == "" {
			return ThreePartTopic{}, fmt.Errorf("%w: %q", ErrMalformedTopic, pattern)
		}
	}
	return ThreePartTopic{
		agentType: segmentFromString(parts[0]),
		groupOrID: segmentFromString(parts[1]),
		plugName:  parts[2],
	}, nil
}

// ParseConcrete parses a fully resolved topic string, the kind a message is
// actually published on. Wildcards are rejected in every position.
func ParseConcrete(topic string) (ThreePartTopic, error) {
	parts := strings.Split(topic, Separator)
	if len(parts) != segmentCount {
		return ThreePartTopic{}, fmt.Errorf("%w: %q has %d", ErrMalformedTopic, topic, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return ThreePartTopic{}, fmt.Errorf("%w: %q", ErrMalformedTopic, topic)
		}
		if p == Wildcard {
			return ThreePartTopic{}, fmt.Errorf("%w: %q", ErrWildcardSegment, topic)
		}
	}
	return ThreePartTopic{
		agentType: Exact(parts[0]),
		groupOrID: Exact(parts[1]),
		plugName:  parts[2],
	}, nil
}

// AgentType returns the first segment.
func (t ThreePartTopic) AgentType() Segment {
	return t.agentType
}

// GroupOrID returns the second segment.
func (t ThreePartTopic) GroupOrID() Segment {
	return t.groupOrID
}

// PlugName returns the third segment, which is always concrete.
func (t ThreePartTopic) PlugName() string {
	return t.plugName
}

// IsPattern reports whether any segment is a wildcard.
func (t ThreePartTopic) IsPattern() bool {
	return t.agentType.IsWildcard() || t.groupOrID.IsWildcard()
}

// String returns the wire form of the topic.
func (t ThreePartTopic) String() string {
	return t.agentType.String() + Separator + t.groupOrID.String() + Separator + t.plugName
}

// validateLiteral rejects segment values that would corrupt the topic
// structure: empty strings, embedded separators and the wildcard token.
func validateLiteral(seg string) error {
	switch {
	case seg == "":
		return fmt.Errorf("%w: empty segment", ErrMalformedTopic)
	case seg == Wildcard:
		return fmt.Errorf("%w: %q", ErrWildcardSegment, seg)
	case strings.Contains(seg, Separator):
		return fmt.Errorf("%w: segment %q contains %q", ErrMalformedTopic, seg, Separator)
	}
	return nil
}

// DefaultSubscribePattern returns the pattern that matches the named plug
// published by any agent: "+/+/<plugName>".
func DefaultSubscribePattern(plugName string) string {
	return Wildcard + Separator + Wildcard + Separator + plugName
}

// AgentTypeFromTopic extracts the first segment of a raw topic string.
// It is deliberately loose - the segment is returned whenever it exists,
// even if the topic does not have exactly three parts - so that diagnostic
// tooling can report on malformed traffic.
func AgentTypeFromTopic(topic string) (string, bool) {
	return segmentAt(topic, 0)
}

// GroupOrIDFromTopic extracts the second segment of a raw topic string.
func GroupOrIDFromTopic(topic string) (string, bool) {
	return segmentAt(topic, 1)
}

// PlugNameFromTopic extracts the third segment of a raw topic string.
func PlugNameFromTopic(topic string) (string, bool) {
	return segmentAt(topic, 2)
}

func segmentAt(topic string, index int) (string, bool) {
	parts := strings.Split(topic, Separator)
	if index >= len(parts) {
		return "", false
	}
	return parts[index], true
}
