// Package csvimport lee compras de materiales desde exportaciones CSV (hojas de cálculo,
// sistemas de compras), en UTF-8 o Latin-1.
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// PurchaseRow una fila del archivo: columnas name, quantity, unit y unit_cost (opcional).
type PurchaseRow struct {
	Line     int
	Name     string
	Quantity decimal.Decimal
	Unit     string
	UnitCost *decimal.Decimal
}

// ErrMissingColumn el encabezado no trae una columna obligatoria.
var ErrMissingColumn = errors.New("csv: falta columna obligatoria")

var headerAliases = map[string]string{
	"name": "name", "nombre": "name", "material": "name",
	"quantity": "quantity", "cantidad": "quantity", "qty": "quantity",
	"unit": "unit", "unidad": "unit",
	"unit_cost": "unit_cost", "costo": "unit_cost", "costo_unitario": "unit_cost", "cost": "unit_cost",
}

// Decoder devuelve un reader que convierte charset a UTF-8. Acepta "utf-8" (por defecto),
// "latin1"/"iso-8859-1" y "windows-1252".
func Decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("csv: charset no soportado: %s", charset)
	}
}

// ParsePurchases lee todas las filas. El separador (',' o ';') se detecta en el encabezado;
// con ';' se acepta coma decimal ("2,5").
func ParsePurchases(r io.Reader, charset string) ([]PurchaseRow, error) {
	dec, err := Decoder(r, charset)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(dec)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("csv: leer: %w", err)
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	firstLine := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		firstLine = head[:i]
	}
	sep := ','
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		sep = ';'
	}

	// Descartar BOM si viene.
	if bom, _ := br.Peek(3); bytes.Equal(bom, []byte("\xef\xbb\xbf")) {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.Comma = sep
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("csv: encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[key] = i
		}
	}
	for _, req := range []string{"name", "quantity"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}

	var out []PurchaseRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: línea %d: %w", line, err)
		}
		name := field(rec, cols, "name")
		if name == "" {
			continue
		}
		qty, err := parseDecimal(field(rec, cols, "quantity"), sep)
		if err != nil {
			return nil, fmt.Errorf("csv: línea %d: cantidad: %w", line, err)
		}
		row := PurchaseRow{Line: line, Name: name, Quantity: qty, Unit: field(rec, cols, "unit")}
		if raw := field(rec, cols, "unit_cost"); raw != "" {
			cost, err := parseDecimal(raw, sep)
			if err != nil {
				return nil, fmt.Errorf("csv: línea %d: costo: %w", line, err)
			}
			row.UnitCost = &cost
		}
		out = append(out, row)
	}
	return out, nil
}

func field(rec []string, cols map[string]int, key string) string {
	i, ok := cols[key]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseDecimal(s string, sep rune) (decimal.Decimal, error) {
	if sep == ';' {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
