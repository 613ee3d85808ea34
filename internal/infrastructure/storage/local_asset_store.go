package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
)

var _ ports.AssetStore = (*LocalAssetStore)(nil)

// LocalAssetStore copia las imágenes a un directorio servido como estático (desarrollo).
// La URL devuelta es baseURL/<folder>/<uuid><ext>.
type LocalAssetStore struct {
	fs      afero.Fs
	root    string
	baseURL string
}

// NewLocalAssetStore construye el adaptador. baseURL por defecto: http://localhost:8080/uploads.
func NewLocalAssetStore(fs afero.Fs, root, baseURL string) *LocalAssetStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	return &LocalAssetStore{fs: fs, root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload copia el archivo dentro de root/folder.
func (s *LocalAssetStore) Upload(ctx context.Context, localPath, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := s.fs.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("abrir %s: %w", localPath, err)
	}
	defer src.Close()

	key := objectKey(folder, localPath)
	dstPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := s.fs.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio: %w", err)
	}
	dst, err := s.fs.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("crear %s: %w", dstPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = s.fs.Remove(dstPath)
		return "", fmt.Errorf("copiar imagen: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("cerrar %s: %w", dstPath, err)
	}
	return s.baseURL + "/" + key, nil
}
