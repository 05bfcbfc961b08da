// Package domain contains the core vocabulary entities of WordSprint: catalog
// words, a learner's per-word learning record, and the quiz value types that
// describe how a word is asked and answered. It has no knowledge of storage or
// transport.
package domain
