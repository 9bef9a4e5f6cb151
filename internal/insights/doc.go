// Package insights aggregates live traffic statistics for the topics
// summary: message counts and rates per topic, plus the set of agent
// types, groups/ids and plug names seen on the bus.
package insights
