package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fitx/internal/modules/plugin/domain"
	pluginout "fitx/internal/modules/plugin/port/out"
)

// FileManifestStore reads <dataDir>/plugins/plugins.json. Relative binaries
// resolve against the data directory.
type FileManifestStore struct {
	dataDir string
	path    string
}

func NewFileManifestStore(dataDir string) pluginout.ManifestStore {
	return &FileManifestStore{dataDir: dataDir, path: filepath.Join(dataDir, "plugins", "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest store: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []domain.Manifest{}, nil
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.dataDir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
