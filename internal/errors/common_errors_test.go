package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "render error type", errType: ErrTypeRender, expected: "RENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewNotFoundError("competitor workbook"),
			wantMessage: "[NOT_FOUND] competitor workbook not found",
		},
		{
			name:        "error with cause",
			appError:    NewParsingError("read competitor sheet", fmt.Errorf("zip: not a valid zip file")),
			wantMessage: "[PARSING] read competitor sheet: zip: not a valid zip file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("save workbook: %w", NewStorageError("write report", cause))

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewRenderError("render deck", nil).
		WithContext("path", "reports/market_study_presentation.pdf").
		WithContext("slides", 6)

	assert.Equal(t, "reports/market_study_presentation.pdf", err.Context["path"])
	assert.Equal(t, 6, err.Context["slides"])

	bare := &AppError{Type: ErrTypeConfig, Message: "bad port"}
	bare.WithContext("port", -1)
	assert.Equal(t, -1, bare.Context["port"])
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		errType  ErrorType
		expected bool
	}{
		{"direct match", NewConfigError("bad", nil), ErrTypeConfig, true},
		{"wrapped match", fmt.Errorf("load: %w", NewNotFoundError("file")), ErrTypeNotFound, true},
		{"different type", NewParsingError("bad", nil), ErrTypeStorage, false},
		{"plain error", errors.New("boom"), ErrTypeParsing, false},
		{"nil error", nil, ErrTypeParsing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsType(tt.err, tt.errType))
		})
	}
}
