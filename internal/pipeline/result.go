package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	apperrors "marketstudy/internal/errors"
	"marketstudy/pkg/contracts"
	"marketstudy/pkg/contracts/domain"
)

// SaveResult writes result as indented JSON, stamped with the current data
// format version.
func SaveResult(path string, result domain.StudyResult) error {
	result.FormatVersion = contracts.DataFormatVersion
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("encode analysis results", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create reports directory", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("write analysis results", err).WithContext("path", path)
	}
	return nil
}

// LoadResult reads a result saved by SaveResult. Results written in another
// data format version are rejected as PARSING errors.
func LoadResult(path string) (domain.StudyResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.StudyResult{}, apperrors.NewNotFoundError("analysis results").WithContext("path", path)
	}
	if err != nil {
		return domain.StudyResult{}, apperrors.NewStorageError("read analysis results", err)
	}

	var result domain.StudyResult
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.StudyResult{}, apperrors.NewParsingError("decode analysis results", err)
	}
	if result.FormatVersion != contracts.DataFormatVersion {
		return domain.StudyResult{}, apperrors.NewParsingError(
			fmt.Sprintf("unsupported analysis results format %q", result.FormatVersion), nil).
			WithContext("path", path)
	}
	return result, nil
}
