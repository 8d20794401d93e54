package services

import "errors"

// Study service errors
var (
	ErrStudyRunning  = errors.New("study run already in progress")
	ErrNoStudyResult = errors.New("no study result available")
)
