// Package codec handles the wire encoding of message payloads.
//
// Payloads on the bus are MessagePack. Publishers describe messages as JSON
// (on the command line or in batch files), which is converted to MessagePack
// before publishing; the receive side decodes MessagePack payloads back to
// JSON for display.
//
// An empty payload is legal and distinct from an encoding failure: plugs
// that carry no data publish zero-byte messages as a bare signal.
package codec
