package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// seedRow una línea del CSV: name,image_path[,products].
// products: "Matte Red=12.50;Nude=9.90" (productos asociados a la categoría).
type seedRow struct {
	Line      int
	Name      string
	ImagePath string
	Products  []seedProduct
}

type seedProduct struct {
	Name  string
	Price decimal.Decimal
}

// readRows lee el CSV. Las rutas de imagen relativas se resuelven contra baseDir.
// Con latin1 el archivo se decodifica desde ISO-8859-1 (exportaciones de Excel).
func readRows(r io.Reader, baseDir string, latin1 bool) ([]seedRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows []seedRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue // encabezado
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 2 columnas (name,image_path)", line)
		}
		row := seedRow{
			Line:      line,
			Name:      strings.TrimSpace(rec[0]),
			ImagePath: strings.TrimSpace(rec[1]),
		}
		if row.ImagePath != "" && !filepath.IsAbs(row.ImagePath) {
			row.ImagePath = filepath.Join(baseDir, row.ImagePath)
		}
		if len(rec) > 2 {
			products, err := parseProducts(rec[2])
			if err != nil {
				return nil, fmt.Errorf("línea %d: %w", line, err)
			}
			row.Products = products
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseProducts(s string) ([]seedProduct, error) {
	var out []seedProduct
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, priceStr, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("producto %q: formato nombre=precio", item)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(priceStr))
		if err != nil {
			return nil, fmt.Errorf("producto %q: precio inválido: %w", item, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("producto %q: precio negativo", item)
		}
		out = append(out, seedProduct{Name: strings.TrimSpace(name), Price: price})
	}
	return out, nil
}
