// Package batch loads message batches from JSON files for replay.
//
// A batch file is a JSON array of entries. Each entry names its
// destination either by plug name (resolved against the sending agent)
// or by full topic, carries an arbitrary JSON payload, and may delay
// before being sent:
//
//	[
//	  {"plug": "colours", "payload": {"r": 255}, "delay_ms": 100},
//	  {"topic": "lidar/front/scans", "payload": [1, 2, 3]}
//	]
//
// Entries with a full topic are checked against the three-part topic
// convention when the file is loaded, so malformed batches fail before
// any message reaches the broker.
package batch
