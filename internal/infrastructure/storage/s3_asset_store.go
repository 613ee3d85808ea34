// Package storage implementa el puerto AssetStore para las imágenes de categorías.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
)

var _ ports.AssetStore = (*S3AssetStore)(nil)

// s3PutAPI subconjunto del cliente S3 que usa el adaptador (permite un fake en tests).
type s3PutAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3AssetStore sube imágenes a cualquier almacenamiento compatible con S3 (AWS, MinIO, RustFS)
// y devuelve una URL pública permanente (sin firma).
type S3AssetStore struct {
	client  s3PutAPI
	fs      afero.Fs
	bucket  string
	baseURL string
}

// NewS3AssetStore crea el adaptador a partir de la configuración.
func NewS3AssetStore(cfg config.AssetConfig, fs afero.Fs) (*S3AssetStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("ASSET_S3_BUCKET requerido")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("credenciales S3 requeridas")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("endpoint S3 inválido: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("config AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newS3AssetStore(client, fs, cfg.Bucket, publicBaseURL(cfg, endpoint, region)), nil
}

func newS3AssetStore(client s3PutAPI, fs afero.Fs, bucket, baseURL string) *S3AssetStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &S3AssetStore{client: client, fs: fs, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

// publicBaseURL base de las URLs devueltas: ASSET_PUBLIC_BASE_URL, o el endpoint con el bucket.
func publicBaseURL(cfg config.AssetConfig, endpoint, region string) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
}

// Upload sube el archivo a <folder>/<uuid><ext>. La lectura pública la da la política del bucket.
func (s *S3AssetStore) Upload(ctx context.Context, localPath, folder string) (string, error) {
	f, err := s.fs.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("abrir %s: %w", localPath, err)
	}
	defer f.Close()

	contentType, err := sniffContentType(f)
	if err != nil {
		return "", err
	}

	key := objectKey(folder, localPath)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
