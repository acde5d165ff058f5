// Package types holds the shared value types and interfaces of the sync
// engine: the injectable filesystem, inspected entries, conflict
// policies, and the action report.
package types
