package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
)

var _ dto.ImageFile = (*StagedFile)(nil)

// Stager materializa en disco local los archivos recibidos por multipart para que el
// asset store los suba desde una ruta.
type Stager struct {
	fs  afero.Fs
	dir string
}

// NewStager dir vacío usa el directorio temporal del sistema.
func NewStager(fs afero.Fs, dir string) *Stager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Stager{fs: fs, dir: dir}
}

// Stage copia src a un archivo temporal. Si la copia falla el archivo se elimina.
func (s *Stager) Stage(src io.Reader, filename, contentType string) (*StagedFile, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio temporal: %w", err)
	}
	f, err := afero.TempFile(s.fs, s.dir, "category-*"+safeExt(filename))
	if err != nil {
		return nil, fmt.Errorf("crear archivo temporal: %w", err)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(f.Name())
		return nil, fmt.Errorf("escribir archivo temporal: %w", err)
	}
	return &StagedFile{
		fs:          s.fs,
		path:        f.Name(),
		filename:    filename,
		contentType: contentType,
		size:        n,
	}, nil
}

// StagedFile archivo temporal ya escrito. Release es idempotente.
type StagedFile struct {
	fs          afero.Fs
	path        string
	filename    string
	contentType string
	size        int64

	once sync.Once
	err  error
}

func (f *StagedFile) Path() string        { return f.path }
func (f *StagedFile) Filename() string    { return f.filename }
func (f *StagedFile) ContentType() string { return f.contentType }
func (f *StagedFile) Size() int64         { return f.size }

// Release elimina el archivo temporal. Un archivo ya borrado no es error.
func (f *StagedFile) Release() error {
	f.once.Do(func() {
		if err := f.fs.Remove(f.path); err != nil && !os.IsNotExist(err) {
			f.err = fmt.Errorf("eliminar %s: %w", f.path, err)
		}
	})
	return f.err
}

// safeExt conserva solo la extensión del nombre del cliente, sin separadores.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
