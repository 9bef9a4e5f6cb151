// Package mqtt provides MQTT client connectivity for the tether CLI.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Connection health monitoring
//
// # Architecture
//
// Tether agents communicate exclusively through a central MQTT broker.
// Every message is published on a three-part topic
// (AgentType/GroupOrId/PlugName, see the topics package); this package is
// the transport underneath that convention and is deliberately ignorant of
// it - callers hand it fully resolved topic strings.
//
//	tether CLI ↔ MQTT Broker ↔ other agents
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to every "scans" plug on the bus
//	err = client.Subscribe("+/+/scans", 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("received on %s: %d bytes", topic, len(payload))
//	        return nil
//	    })
//
//	// Publish a message
//	client.Publish("lidar/front/scans", payload, 1, false)
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
package mqtt
