// Package topics implements the three-part topic convention that addresses
// every message on the bus.
//
// A topic is exactly three segments joined by "/":
//
//	AgentType/GroupOrId/PlugName
//
//   - AgentType identifies the category of publishing agent (its "role")
//   - GroupOrId identifies an agent instance or group
//   - PlugName identifies a specific data channel
//
// Subscribers register interest using pattern topics, where AgentType and/or
// GroupOrId may be the single-level wildcard "+". The PlugName segment must
// always be concrete: a Plug without an explicit name is a configuration
// error, not a catch-all subscription. This invariant is encoded in the
// types themselves - ThreePartTopic stores the plug name as a plain string
// while the first two segments are a closed concrete-or-wildcard Segment
// value.
//
// The core of the package is Match, the predicate the routing layer applies
// to decide which registered patterns receive a published message:
//
//	ok, err := topics.Match("+/+/temperature", "sensor/kitchen/temperature")
//
// Match is a pure function with no state; it is safe to call concurrently
// from any number of goroutines without coordination.
package topics
