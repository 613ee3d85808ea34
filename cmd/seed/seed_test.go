package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

func TestReadRows(t *testing.T) {
	csvData := `name,image_path,products
Lipsticks,img/lipstick.png,Matte Red=12.50;Nude=9.90
# comentario
Perfumes,/abs/perfume.jpg
`
	rows, err := readRows(strings.NewReader(csvData), "/seed", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Lipsticks", rows[0].Name)
	assert.Equal(t, "/seed/img/lipstick.png", rows[0].ImagePath)
	require.Len(t, rows[0].Products, 2)
	assert.Equal(t, "Matte Red", rows[0].Products[0].Name)
	assert.Equal(t, "12.5", rows[0].Products[0].Price.String())

	assert.Equal(t, "/abs/perfume.jpg", rows[1].ImagePath)
	assert.Empty(t, rows[1].Products)
}

func TestReadRows_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Maquillaje Niños,a.png\n")
	require.NoError(t, err)

	rows, err := readRows(bytes.NewReader([]byte(encoded)), "/seed", true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maquillaje Niños", rows[0].Name)
}

func TestReadRows_Errores(t *testing.T) {
	_, err := readRows(strings.NewReader("solo-nombre\n"), "/", false)
	assert.Error(t, err)

	_, err = readRows(strings.NewReader("A,a.png,Sin precio\n"), "/", false)
	assert.Error(t, err)

	_, err = readRows(strings.NewReader("A,a.png,X=-1\n"), "/", false)
	assert.Error(t, err)
}

type fakeCreator struct {
	inputs []dto.CreateCategoryInput
	fail   map[string]bool
}

func (f *fakeCreator) Create(_ context.Context, in dto.CreateCategoryInput) (*dto.CategoryResponse, error) {
	f.inputs = append(f.inputs, in)
	if f.fail[in.Name] {
		return nil, errors.New("falló")
	}
	if in.Image != nil {
		_ = in.Image.Release()
	}
	return &dto.CategoryResponse{ID: "cat-" + in.Name, Name: in.Name, Image: "https://cdn/" + in.Name}, nil
}

type fakeProducts struct {
	created []*entity.Product
}

func (f *fakeProducts) CountByCategory(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.created = append(f.created, p)
	return nil
}

func TestSeed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/seed/lipstick.png", []byte("png"), 0o644))

	rows, err := readRows(strings.NewReader(
		"Lipsticks,lipstick.png,Matte Red=12.50\nPerfumes,missing.png\nBlush,lipstick.png\n"), "/seed", false)
	require.NoError(t, err)

	creator := &fakeCreator{fail: map[string]bool{"Blush": true}}
	products := &fakeProducts{}
	n := 0
	newID := func() string { n++; return "p" + strings.Repeat("x", n) }

	created, failed := seed(context.Background(), creator, products, newID, fs, rows, logger.Nop())

	assert.Equal(t, 1, created)
	assert.Equal(t, 2, failed, "imagen inexistente + error del caso de uso")
	require.Len(t, creator.inputs, 2, "la fila sin imagen no llega al caso de uso")

	require.Len(t, products.created, 1)
	assert.Equal(t, []string{"cat-Lipsticks"}, products.created[0].CategoryIDs)
	assert.Equal(t, "12.5", products.created[0].Price.String())

	exists, _ := afero.Exists(fs, "/seed/lipstick.png")
	assert.True(t, exists, "el seed nunca borra las imágenes de origen")
}
