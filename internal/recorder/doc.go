// Package recorder persists captured bus traffic for later playback.
//
// Messages are stored in a SQLite file grouped by session name, with their
// topic both verbatim and split into the three convention segments so that
// sessions can be filtered without re-parsing. Capture order is preserved
// through timestamps, which playback uses to reproduce the original
// message timing.
package recorder
