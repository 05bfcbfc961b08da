// Package learning implements the vocabulary learning and quiz engine.
//
// Learners are assigned English/Turkish word pairs from the shared catalog,
// quizzed on them in four modes, and move each word between the Learning and
// Learned states based on how a scored batch went. The package is split into
// the components that make up the engine:
//
//   - WordCatalog: read access to the catalog and uniform catalog sampling
//   - AssignmentPlanner: assigns unassigned catalog words to a learner
//   - DistractorPool: wrong-but-plausible choices for multiple-choice modes
//   - QuizGenerator: builds a quiz from a learner's records
//   - AnswerScorer: scores answers and applies the state transition rules
//   - StatsReporter: aggregates a learner's progress
//
// Service ties the components together behind one interface. Every random
// decision goes through a sampling.Sampler, so a seeded sampler makes the
// engine fully deterministic.
package learning
