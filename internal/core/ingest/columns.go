package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sutram/service-registry/internal/core/domain"
)

// aliases lists, per canonical field, the accepted header spellings after
// normalization. Order matters: the first alias present wins.
var aliases = map[domain.Field][]string{
	domain.FieldRegistro:    {"registro"},
	domain.FieldDataEntrada: {"data entrada", "data_entrada", "data"},
	domain.FieldSolicitante: {"solicitante"},
	domain.FieldEndereco:    {"endereco"},
	domain.FieldZona:        {"zona"},
	domain.FieldObjeto:      {"objeto"},
	domain.FieldQuantidade:  {"quantidade", "qtd"},
	domain.FieldMes:         {"mes", "meses"},
	domain.FieldStatus:      {"status", "situacao"},
}

// NormalizeHeader lowercases, trims, collapses inner whitespace and strips
// diacritics, so "  Endereço " and "ENDERECO" both become "endereco".
func NormalizeHeader(h string) string {
	folded, _, err := transform.String(foldAccents(), h)
	if err != nil {
		folded = h
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Columns maps canonical fields to column positions in a table.
type Columns struct {
	index   map[domain.Field]int
	headers []string
}

// ResolveColumns matches headers against the alias table. Fields with no
// matching header are simply absent.
func ResolveColumns(headers []string) Columns {
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		n := NormalizeHeader(h)
		if _, dup := seen[n]; !dup {
			seen[n] = i
		}
	}

	cols := Columns{index: make(map[domain.Field]int, len(aliases)), headers: headers}
	for field, names := range aliases {
		for _, name := range names {
			if i, ok := seen[name]; ok {
				cols.index[field] = i
				break
			}
		}
	}
	return cols
}

// Header returns the original header resolved for field.
func (c Columns) Header(field domain.Field) (string, bool) {
	i, ok := c.index[field]
	if !ok {
		return "", false
	}
	return c.headers[i], true
}

// Value returns the cell for field in row, or nil when the field is absent or
// the row is too short.
func (c Columns) Value(row []any, field domain.Field) any {
	i, ok := c.index[field]
	if !ok || i >= len(row) {
		return nil
	}
	return row[i]
}

// Record coerces one row. It never fails.
func (c Columns) Record(row []any) domain.ServiceRecord {
	qty := Int(c.Value(row, domain.FieldQuantidade), 0)
	if qty < 0 {
		qty = 0
	}
	return domain.ServiceRecord{
		Registro:    String(c.Value(row, domain.FieldRegistro)),
		DataEntrada: Date(c.Value(row, domain.FieldDataEntrada)),
		Solicitante: String(c.Value(row, domain.FieldSolicitante)),
		Endereco:    String(c.Value(row, domain.FieldEndereco)),
		Zona:        String(c.Value(row, domain.FieldZona)),
		Objeto:      String(c.Value(row, domain.FieldObjeto)),
		Quantidade:  qty,
		Mes:         String(c.Value(row, domain.FieldMes)),
		Status:      String(c.Value(row, domain.FieldStatus)),
	}
}
