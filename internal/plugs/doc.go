// Package plugs defines input and output plugs, the named data channels an
// agent exposes on the bus.
//
// A plug resolves to a topic in the three-part convention:
//
//   - An output plug named "scans" on agent role "lidar", id "front"
//     publishes on "lidar/front/scans".
//   - An input plug named "scans" subscribes to "+/+/scans" by default,
//     receiving that plug from every agent on the bus. The role and id
//     positions can be narrowed individually.
//
// Plugs are described with a chainable Builder and resolved with Build,
// which substitutes defaults and validates the result against the topic
// convention. A fully custom topic override is allowed - it may use broker
// wildcard grammar outside the convention - but the plug then loses its
// parsed three-part form.
package plugs
