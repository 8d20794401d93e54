package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketstudy/internal/config"
	"marketstudy/internal/pipeline"
	"marketstudy/pkg/contracts"
)

func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MARKETSTUDY_LOGGING_OUTPUT", "file")
	t.Setenv("MARKETSTUDY_OBSERVABILITY_METRIC_EXPORTER", "none")
	t.Setenv("MARKETSTUDY_OBSERVABILITY_TRACE_EXPORTER", "none")
}

func TestRun_PrintsSummary(t *testing.T) {
	quietEnv(t)
	base := t.TempDir()

	var out bytes.Buffer
	err := run(context.Background(), []string{"-base", base, "-business", "Festive Test"}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "completed")
	assert.Contains(t, text, "Generated files:")
	assert.Contains(t, text, "Total investment:")
	assert.FileExists(t, filepath.Join(base, config.DefaultReportsDir, config.WorkbookFile))
	assert.FileExists(t, filepath.Join(base, config.DefaultLogsDir, config.DefaultLogFile))
}

func TestRun_JSON(t *testing.T) {
	quietEnv(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-base", t.TempDir(), "-json"}, &out))

	var summary pipeline.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, pipeline.RunStatusCompleted, summary.Status)
	require.Len(t, summary.Steps, 4)
	assert.Equal(t, pipeline.StepBootstrap, summary.Steps[0].ID)
	assert.Len(t, summary.Artifacts, 9)
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &out))
	assert.Contains(t, out.String(), contracts.GetVersionString())
	assert.Contains(t, out.String(), "commit "+contracts.GitCommit)
}

func TestRun_Errors(t *testing.T) {
	quietEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"missing config file", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{"missing assumptions file", []string{"-base", t.TempDir(), "-assumptions", filepath.Join(t.TempDir(), "missing.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(context.Background(), tt.args, &out))
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	quietEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := run(ctx, []string{"-base", t.TempDir()}, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), string(pipeline.RunStatusCancelled))
}
