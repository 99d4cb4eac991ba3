// Package orchestrator wires one user action to the snapshot reader → remote
// prediction → donut → ranked bars sequence. Every failure is funneled into a
// single Failure delivered to a Notifier, and leaves both views untouched.
package orchestrator
