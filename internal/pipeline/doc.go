// Package pipeline runs a complete market study.
//
// A run is a fixed sequence of steps sharing one State:
//
//	bootstrap  create the data, reports and logs directories
//	seed       competitor research template, market overview and JSON
//	analyze    competitor metrics and the financial model, persisted as
//	           analysis_results.json plus the monthly cash-flow CSV
//	render     workbook, slide deck and executive summary, in parallel
//
// Every step gets its own OpenTelemetry span and step metrics. The first
// failing step stops the run; later steps are marked skipped and the
// error is returned as a *StepError.
package pipeline
