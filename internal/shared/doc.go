// Package shared holds helpers used across the market study packages that
// do not belong to any single domain.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on structured logs
//   - SampleCompetitors, a small filled-in competitor table
//   - WriteWorkbook for building xlsx fixtures with excelize
//
// Example usage:
//
//	func TestAnalyze(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := filepath.Join(t.TempDir(), "competitors.xlsx")
//	    testutil.WriteWorkbook(t, path, "Sheet1", rows)
//	    ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
