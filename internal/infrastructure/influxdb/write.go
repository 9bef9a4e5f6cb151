package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteMessageRate writes one per-topic traffic measurement.
//
// Called when flushing a traffic snapshot; each observed topic becomes
// a point tagged by its convention segments. The write is non-blocking;
// data is batched and sent asynchronously.
//
// Parameters:
//   - topic: Full topic string as seen on the wire
//   - agentType, groupOrID, plugName: Parsed segments (empty when the
//     topic does not follow the three-part convention)
//   - count: Messages observed on the topic during the window
//   - rate: Messages per second over the window
func (c *Client) WriteMessageRate(topic, agentType, groupOrID, plugName string, count int, rate float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"tether_traffic",
		map[string]string{
			"topic":       topic,
			"agent_type":  agentType,
			"group_or_id": groupOrID,
			"plug_name":   plugName,
		},
		map[string]interface{}{
			"count": count,
			"rate":  rate,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Used for the one-off window summary next to the per-topic rate
// points.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
