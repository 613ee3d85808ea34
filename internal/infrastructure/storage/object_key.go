package storage

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// objectKey <folder>/<uuid><ext>. El nombre original no se usa: evita colisiones y caracteres raros.
func objectKey(folder, localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	name := uuid.New().String() + ext
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}

// sniffContentType detecta el tipo MIME por contenido y deja el reader al inicio.
func sniffContentType(r io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("leer cabecera: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rebobinar archivo: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}
