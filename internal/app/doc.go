// Package app wires the market study web service together: configuration,
// logging, OpenTelemetry, the study and health services, the chi router
// and the HTTP server lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, config.yaml, MARKETSTUDY_* env vars)
//	2. Resolve and create the data, reports and logs directories
//	3. Initialize the global slog logger
//	4. Initialize OpenTelemetry tracing and the Prometheus meter
//	5. Build the study and health services
//	6. Set up middleware, API routes and /metrics
//	7. Create the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication("")
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Run blocks until SIGINT or SIGTERM, then shuts the server down within
// the configured shutdown timeout and flushes telemetry. Initialization
// errors are returned to the caller; the package never calls os.Exit.
package app
