package competitor

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	apperrors "marketstudy/internal/errors"
	"marketstudy/pkg/contracts/domain"
)

// Store persists competitor tables as a JSON array of objects keyed by
// spreadsheet column name.
type Store struct {
	path string
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Save writes records, replacing any previous content.
func (s *Store) Save(records []domain.CompetitorRecord) error {
	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, RecordToMap(r))
	}

	data, err := json.MarshalIndent(rows, "", "    ")
	if err != nil {
		return apperrors.NewStorageError("encode competitor data", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return apperrors.NewStorageError("create data directory", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return apperrors.NewStorageError("write competitor data", err).WithContext("path", s.path)
	}
	return nil
}

// Load reads the stored table. Null values decode as blank fields.
func (s *Store) Load() ([]domain.CompetitorRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewNotFoundError("competitor data").WithContext("path", s.path)
	}
	if err != nil {
		return nil, apperrors.NewStorageError("read competitor data", err)
	}

	var rows []map[string]*string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, apperrors.NewParsingError("decode competitor data", err).WithContext("path", s.path)
	}

	records := make([]domain.CompetitorRecord, 0, len(rows))
	for _, row := range rows {
		values := make(map[string]string, len(row))
		for k, v := range row {
			if v != nil {
				values[k] = *v
			}
		}
		records = append(records, RecordFromMap(values))
	}
	return records, nil
}
