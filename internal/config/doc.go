// Package config provides centralized configuration management for the
// market study. It loads configuration from multiple sources, validates it,
// and resolves every file location the study uses.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern MARKETSTUDY_* for namespacing:
//
//	MARKETSTUDY_SERVER_PORT=8080
//	MARKETSTUDY_LOGGING_LEVEL=debug
//	MARKETSTUDY_PATHS_BASE_DIR=/srv/study
//	MARKETSTUDY_STUDY_ASSUMPTIONS_FILE=assumptions.yaml
//
// # Path Management
//
// Paths is the single source of truth for file locations:
//
//	paths, err := cfg.ResolvePaths()
//	if err != nil {
//	    return err
//	}
//	if err := paths.EnsureDirectories(); err != nil {
//	    return err
//	}
//	workbook := paths.Workbook // reports/market_study_report.xlsx
package config
