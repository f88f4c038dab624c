// Package assets maps logical static asset names to their fingerprinted files.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// StaticPrefix is the URL prefix static files are served under.
const StaticPrefix = "/static/"

// ManifestName is the manifest file name inside the static tree.
const ManifestName = "manifest.json"

// AssetResolver resolves logical asset names (e.g. "js/app.js") using a
// manifest.json of {"logical": "fingerprinted"} entries. Names missing from
// the manifest resolve to themselves.
type AssetResolver struct {
	mu       sync.RWMutex
	manifest map[string]string
	fsys     fs.FS
	path     string
	reload   bool
	logger   *slog.Logger
}

// NewAssetResolverFromFS loads the manifest at path from fsys. A missing
// manifest is not an error.
func NewAssetResolverFromFS(fsys fs.FS, path string) (*AssetResolver, error) {
	ar := &AssetResolver{fsys: fsys, path: path, logger: slog.Default()}
	return ar, ar.Reload()
}

// NewAssetResolverFromDisk loads the manifest from a file and re-reads it on
// every resolve, so rebuilt assets are picked up without a restart.
func NewAssetResolverFromDisk(path string) (*AssetResolver, error) {
	ar := &AssetResolver{fsys: os.DirFS("."), path: path, reload: true, logger: slog.Default()}
	return ar, ar.Reload()
}

// Reload re-reads the manifest.
func (ar *AssetResolver) Reload() error {
	manifest := map[string]string{}
	if ar.fsys != nil && ar.path != "" {
		data, err := fs.ReadFile(ar.fsys, ar.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("read asset manifest %s: %w", ar.path, err)
		default:
			if err := json.Unmarshal(data, &manifest); err != nil {
				return fmt.Errorf("parse asset manifest %s: %w", ar.path, err)
			}
		}
	}
	ar.mu.Lock()
	ar.manifest = manifest
	ar.mu.Unlock()
	return nil
}

// Resolve returns the URL of a logical asset.
func (ar *AssetResolver) Resolve(logicalName string) string {
	if ar == nil {
		return StaticPrefix + logicalName
	}
	if ar.reload {
		if err := ar.Reload(); err != nil {
			ar.logger.Warn("asset manifest reload failed", slog.String("manifest", ar.path), slog.Any("error", err))
		}
	}
	ar.mu.RLock()
	defer ar.mu.RUnlock()
	if hashed, ok := ar.manifest[logicalName]; ok && hashed != "" {
		return StaticPrefix + hashed
	}
	return StaticPrefix + logicalName
}

// SetLogger updates the resolver's logger. If logger is nil, slog.Default() is used.
func (ar *AssetResolver) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	ar.logger = logger
}
