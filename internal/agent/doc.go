// Package agent ties an agent identity (role and id) to a broker
// connection and the plugs registered on it.
//
// The agent's role becomes the AgentType segment and its id the GroupOrId
// segment of every topic generated for its output plugs. Input plugs are
// registered with a message handler and subscribed immediately; their
// subscriptions survive broker reconnects via the underlying mqtt client.
package agent
