// Package services is the business layer between the HTTP handlers and
// the study engines.
//
// StudyService owns the study pipeline: it serialises full runs, keeps the
// latest result in memory (falling back to analysis_results.json written
// by an earlier process), and answers read-only questions about the market,
// the competitor research and the financial model, including what-if
// recomputations with overridden assumptions.
//
// HealthService reports liveness, directory readiness and the state of the
// last study run.
package services
