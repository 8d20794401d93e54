// Package http implements the HTTP handlers of the market study service.
// Handlers stay thin: they parse and validate the request, call the study
// or health service, and render the result with chi/render.
//
// # Routes
//
//	GET  /api/health                  health of data dirs and the study service
//	GET  /api/health/live             liveness
//	GET  /api/version                 build information
//	GET  /api/market                  market overview
//	GET  /api/competitors/analysis    competitor table and metrics
//	GET  /api/financial/analysis      base case financial analysis
//	GET  /api/financial/sensitivity   CAC and churn sweeps
//	POST /api/financial/what-if       analysis with overridden assumptions
//	POST /api/reports                 run a full study
//	GET  /api/reports/latest          status of the last run
//	GET  /api/reports/result          latest study result as JSON
//	GET  /api/reports/summary         executive summary page
//	GET  /api/reports/files           generated files, newest first
//	GET  /api/reports/files/{name}    download one generated file
//
// # Error Handling
//
// All errors are rendered as RFC 7807 problem details by
// errors.ErrorHandler:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Validation Failed",
//	    "status": 400,
//	    "detail": "Request validation failed",
//	    "instance": "/api/financial/what-if",
//	    "error_code": "VALIDATION_FAILED"
//	}
//
// # Testing
//
// Handlers depend on StudyServiceInterface so tests can use a testify mock
// in place of the real study service.
package http
