// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Prometheus counters, audio cues, catalog star backdrop
// 0.2.0 - Zoom transition with detail panel, keyboard focus cycling
// 0.1.0 - Initial release: orbit widget, drag and wheel momentum, hover picking
