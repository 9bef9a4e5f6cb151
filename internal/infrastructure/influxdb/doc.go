// Package influxdb provides the optional time-series export for traffic
// insights.
//
// The topics command can flush per-topic message rates to an InfluxDB
// v2 bucket for dashboards that outlive a single observation window.
// Writes are non-blocking and batched; async write failures surface
// through the error callback rather than the write call.
//
// The package is a thin wrapper over the official client:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil { ... }
//	defer client.Close()
//
//	client.SetOnError(func(err error) {
//	    log.Warn("influxdb write failed", "error", err)
//	})
//	client.WriteMessageRate("lidar/front/scans", "lidar", "front", "scans", 120, 4.0)
//
// Connect returns ErrDisabled when the config section is disabled, so
// callers can treat the export as strictly optional.
package influxdb
