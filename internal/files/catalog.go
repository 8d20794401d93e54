package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "marketstudy/internal/errors"
)

// FileInfo represents information about a generated file
type FileInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Kind    string    `json:"kind"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
}

var kindsByExt = map[string]string{
	".xlsx": "excel",
	".pdf":  "pdf",
	".html": "html",
	".csv":  "csv",
	".json": "json",
}

// KindOf classifies a file by extension. Unknown extensions return "".
func KindOf(name string) string {
	return kindsByExt[strings.ToLower(filepath.Ext(name))]
}

// Catalog lists and opens the study outputs under a set of directories
type Catalog struct {
	dirs []string
}

// NewCatalog creates a catalog over dirs. Earlier directories win when
// two hold a file with the same name.
func NewCatalog(dirs ...string) *Catalog {
	return &Catalog{dirs: dirs}
}

// List returns the known output files, newest first. Missing directories
// are skipped.
func (c *Catalog) List() ([]FileInfo, error) {
	seen := make(map[string]bool)
	var files []FileInfo

	for _, dir := range c.dirs {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read directory %s", dir), err)
		}

		for _, entry := range entries {
			name := entry.Name()
			kind := KindOf(name)
			if entry.IsDir() || kind == "" || seen[name] {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			seen[name] = true
			files = append(files, FileInfo{
				Name:    name,
				Path:    filepath.Join(dir, name),
				Kind:    kind,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Find resolves a bare file name to a catalog entry. Names carrying a
// directory component are rejected.
func (c *Catalog) Find(name string) (FileInfo, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return FileInfo{}, apperrors.NewAppValidationError(fmt.Sprintf("invalid file name %q", name), nil)
	}
	if KindOf(name) == "" {
		return FileInfo{}, apperrors.NewNotFoundError(name)
	}

	for _, dir := range c.dirs {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return FileInfo{
			Name:    name,
			Path:    path,
			Kind:    KindOf(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}, nil
	}
	return FileInfo{}, apperrors.NewNotFoundError(name)
}

// Latest returns the most recently modified file from a list
func Latest(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}
	return latest, true
}
