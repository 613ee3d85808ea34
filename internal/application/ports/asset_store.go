package ports

import "context"

// AssetStore define el puerto de salida hacia el almacenamiento de imágenes.
// Cualquier adaptador (S3, Cloudinary, local) debe implementar esta interfaz.
// Puede fallar de forma transitoria (red, cuota); el caso de uso no reintenta.
type AssetStore interface {
	// Upload sube el archivo local en localPath dentro de folder y devuelve su URL pública durable.
	Upload(ctx context.Context, localPath, folder string) (secureURL string, err error)
}

// CategoryListCache caché del listado completo de categorías.
// Get devuelve ok=false en miss. Invalidate vacía la caché y avanza la generación; Set solo
// guarda si la generación sigue siendo gen, la leída antes de consultar el repositorio.
type CategoryListCache interface {
	Get(ctx context.Context) (data []byte, ok bool, err error)
	Generation(ctx context.Context) (uint64, error)
	Set(ctx context.Context, gen uint64, data []byte) (stored bool, err error)
	Invalidate(ctx context.Context) error
}
