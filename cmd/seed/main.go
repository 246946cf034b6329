// seed genera una migración goose con el catálogo inicial (productos y bodegas)
// a partir de exportaciones CSV separadas por ';'. Las exportaciones de Excel
// en ruso vienen en Windows-1251; usar -encoding utf-8 si ya están en UTF-8.
//
// Uso: go run ./cmd/seed -products productos.csv -warehouses bodegas.csv
// Columnas: productos = nombre;tipo;precio;descripción  bodegas = nombre;tipo;dirección
// Escribe: internal/infrastructure/postgres/migrations/00002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// seedNamespace hace que el ID de cada fila dependa solo de su nombre: regenerar el seed no duplica filas.
var seedNamespace = uuid.MustParse("6f1c2d7e-4b1a-4e8e-9a55-0c1b0e7d2a10")

type productRow struct {
	ID          string
	Name        string
	TypeID      string
	Price       *decimal.Decimal
	Description string
}

type warehouseRow struct {
	ID      string
	Name    string
	TypeID  string
	Address string
}

func main() {
	productsPath := flag.String("products", "", "CSV de productos")
	warehousesPath := flag.String("warehouses", "", "CSV de bodegas")
	encoding := flag.String("encoding", "windows-1251", "windows-1251 | utf-8")
	outPath := flag.String("out", "", "archivo de salida (por defecto en migrations/)")
	flag.Parse()

	if *productsPath == "" && *warehousesPath == "" {
		fmt.Fprintln(os.Stderr, "indicar -products y/o -warehouses")
		os.Exit(2)
	}

	var products []productRow
	if *productsPath != "" {
		records, err := readCSV(*productsPath, *encoding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer productos: %v\n", err)
			os.Exit(1)
		}
		if products, err = parseProducts(records); err != nil {
			fmt.Fprintf(os.Stderr, "Productos: %v\n", err)
			os.Exit(1)
		}
	}
	var warehouses []warehouseRow
	if *warehousesPath != "" {
		records, err := readCSV(*warehousesPath, *encoding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer bodegas: %v\n", err)
			os.Exit(1)
		}
		warehouses = parseWarehouses(records)
	}

	if *outPath == "" {
		*outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "00002_seed_catalog.sql")
	}
	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, products, warehouses); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir seed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d bodegas\n", *outPath, len(products), len(warehouses))
}

func readCSV(path, encoding string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeCSV(f, encoding)
}

func decodeCSV(r io.Reader, encoding string) ([][]string, error) {
	switch strings.ToLower(encoding) {
	case "windows-1251", "cp1251":
		r = transform.NewReader(r, charmap.Windows1251.NewDecoder())
	case "utf-8", "utf8":
	default:
		return nil, fmt.Errorf("encoding no soportado %q", encoding)
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	// encabezado opcional
	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
	}
	return records, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	return first == "name" || first == "nombre" || first == "наименование"
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

func parseProducts(records [][]string) ([]productRow, error) {
	seen := make(map[string]bool)
	var out []productRow
	for i, rec := range records {
		name := field(rec, 0)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		row := productRow{
			ID:          uuid.NewSHA1(seedNamespace, []byte("product:"+name)).String(),
			Name:        name,
			TypeID:      field(rec, 1),
			Description: field(rec, 3),
		}
		if raw := strings.ReplaceAll(field(rec, 2), ",", "."); raw != "" {
			price, err := decimal.NewFromString(strings.ReplaceAll(raw, " ", ""))
			if err != nil {
				return nil, fmt.Errorf("fila %d: precio %q inválido", i+1, raw)
			}
			if price.IsNegative() {
				return nil, fmt.Errorf("fila %d: precio negativo", i+1)
			}
			row.Price = &price
		}
		out = append(out, row)
	}
	return out, nil
}

func parseWarehouses(records [][]string) []warehouseRow {
	seen := make(map[string]bool)
	var out []warehouseRow
	for _, rec := range records {
		name := field(rec, 0)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, warehouseRow{
			ID:      uuid.NewSHA1(seedNamespace, []byte("warehouse:"+name)).String(),
			Name:    name,
			TypeID:  field(rec, 1),
			Address: field(rec, 2),
		})
	}
	return out
}

func writeSeed(w io.Writer, products []productRow, warehouses []warehouseRow) error {
	if len(products) == 0 && len(warehouses) == 0 {
		return errors.New("sin filas para escribir")
	}
	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por cmd/seed\n\n")
	b.WriteString("-- +goose Up\n")
	if len(warehouses) > 0 {
		b.WriteString("INSERT INTO warehouses (id, name, type_id, address) VALUES\n")
		for i, wh := range warehouses {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s')%s\n", wh.ID, escapeSQL(wh.Name), escapeSQL(wh.TypeID), escapeSQL(wh.Address), sep(i, len(warehouses)))
		}
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")
	}
	if len(products) > 0 {
		b.WriteString("INSERT INTO products (id, name, type_id, price, description) VALUES\n")
		for i, p := range products {
			price := "NULL"
			if p.Price != nil {
				price = p.Price.StringFixed(2)
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', %s, '%s')%s\n", p.ID, escapeSQL(p.Name), escapeSQL(p.TypeID), price, escapeSQL(p.Description), sep(i, len(products)))
		}
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")
	}
	b.WriteString("-- +goose Down\n")
	if len(products) > 0 {
		b.WriteString("DELETE FROM products WHERE id IN (" + idList(len(products), func(i int) string { return products[i].ID }) + ");\n")
	}
	if len(warehouses) > 0 {
		b.WriteString("DELETE FROM warehouses WHERE id IN (" + idList(len(warehouses), func(i int) string { return warehouses[i].ID }) + ");\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func idList(n int, id func(int) string) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "'" + id(i) + "'"
	}
	return strings.Join(parts, ", ")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
