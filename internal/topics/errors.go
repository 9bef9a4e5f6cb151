package topics

import "errors"

// Domain errors for the topics package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, topics.ErrInvalidPattern) {
//	    // reject the plug registration
//	}
var (
	// ErrInvalidPattern is returned when a pattern topic declares a wildcard
	// PlugName segment. A plug identity must always be explicit; a pattern
	// like "+/+/+" is invalid input, not a subscription to everything.
	ErrInvalidPattern = errors.New("topics: pattern plug name must be concrete, not a wildcard")

	// ErrMalformedTopic is returned by the parse functions when a topic
	// string does not have exactly three non-empty segments.
	ErrMalformedTopic = errors.New("topics: topic must have exactly three non-empty segments")

	// ErrWildcardSegment is returned by ParseConcrete when a wildcard token
	// appears in a topic that must be fully resolved.
	ErrWildcardSegment = errors.New("topics: concrete topic cannot contain wildcards")
)
