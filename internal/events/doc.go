// Package events provides types and interfaces for an event-driven architecture.
//
// The learning engine emits an Event after each committed change to a
// learner's records; handlers registered on the emitter react to them without
// the engine knowing who listens.
//
// The primary components are:
// - Event: a typed, JSON-encoded notification about a learner
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
// - AuditLogHandler: writes every event to a structured log
package events
