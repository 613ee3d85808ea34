package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/spf13/afero"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
)

var _ ports.AssetStore = (*CloudinaryAssetStore)(nil)

// cloudinaryUploader subconjunto de uploader.API (permite un fake en tests).
type cloudinaryUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryAssetStore sube imágenes a Cloudinary y devuelve su secure_url.
type CloudinaryAssetStore struct {
	up cloudinaryUploader
	fs afero.Fs
}

// NewCloudinaryAssetStore crea el adaptador desde CLOUDINARY_URL.
func NewCloudinaryAssetStore(cloudinaryURL string, fs afero.Fs) (*CloudinaryAssetStore, error) {
	if cloudinaryURL == "" {
		return nil, errors.New("CLOUDINARY_URL requerido")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cliente cloudinary: %w", err)
	}
	return newCloudinaryAssetStore(&cld.Upload, fs), nil
}

func newCloudinaryAssetStore(up cloudinaryUploader, fs afero.Fs) *CloudinaryAssetStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &CloudinaryAssetStore{up: up, fs: fs}
}

// Upload sube el archivo dentro de folder.
func (s *CloudinaryAssetStore) Upload(ctx context.Context, localPath, folder string) (string, error) {
	f, err := s.fs.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("abrir %s: %w", localPath, err)
	}
	defer f.Close()

	res, err := s.up.Upload(ctx, f, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	// Cloudinary reporta errores de API en el cuerpo, no como error Go.
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: respuesta sin secure_url")
	}
	return res.SecureURL, nil
}
