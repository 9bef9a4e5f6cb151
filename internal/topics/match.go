package topics

import "strings"

// Match reports whether a subscriber registered under patternTopic should
// receive messages published on concreteTopic.
//
// Matching is segment-wise and positional over exactly three "/"-separated
// segments. A pattern segment matches if it is the wildcard "+" or equals
// the concrete segment byte-for-byte. There is no multi-level wildcard and
// no cross-segment semantics.
//
// A pattern whose PlugName segment is the wildcard is a configuration bug
// upstream (a plug was registered without a name) and fails with
// ErrInvalidPattern. This takes precedence over any problem with the
// concrete topic, so a broken registration is always surfaced rather than
// silently treated as "matches everything".
//
// Any other malformed input - the wrong number of segments on either side -
// is a legitimate negative result, not an error, so a routing loop can test
// every candidate without error handling on each miss.
//
// Match is pure and deterministic: the result depends only on the two input
// strings.
func Match(patternTopic, concreteTopic string) (bool, error) {
	pattern := strings.Split(patternTopic, Separator)
	if len(pattern) == segmentCount && pattern[2] == Wildcard {
		return false, ErrInvalidPattern
	}
	if len(pattern) != segmentCount {
		return false, nil
	}

	concrete := strings.Split(concreteTopic, Separator)
	if len(concrete) != segmentCount {
		return false, nil
	}

	for i := range pattern {
		if pattern[i] != Wildcard && pattern[i] != concrete[i] {
			return false, nil
		}
	}
	return true, nil
}

// MatchesTopic applies an already validated pattern to a raw concrete topic
// string. Malformed concrete topics simply fail to match.
//
// For patterns validated once at registration time (via ParsePattern or
// NewForSubscribe) this is the cheaper per-message form of Match, with the
// ErrInvalidPattern case already ruled out by construction.
func (t ThreePartTopic) MatchesTopic(concreteTopic string) bool {
	parts := strings.Split(concreteTopic, Separator)
	if len(parts) != segmentCount {
		return false
	}
	return t.agentType.matches(parts[0]) &&
		t.groupOrID.matches(parts[1]) &&
		t.plugName == parts[2]
}

// Matches reports whether this pattern accepts another, fully concrete,
// three-part topic.
func (t ThreePartTopic) Matches(concrete ThreePartTopic) bool {
	return t.agentType.matches(concrete.agentType.String()) &&
		t.groupOrID.matches(concrete.groupOrID.String()) &&
		t.plugName == concrete.plugName
}
