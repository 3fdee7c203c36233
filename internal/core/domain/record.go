package domain

import "strings"

// Field names one of the nine canonical attributes of a ServiceRecord. The
// value doubles as the column name in the servicos table.
type Field string

const (
	FieldRegistro    Field = "registro"
	FieldDataEntrada Field = "data_entrada"
	FieldSolicitante Field = "solicitante"
	FieldEndereco    Field = "endereco"
	FieldZona        Field = "zona"
	FieldObjeto      Field = "objeto"
	FieldQuantidade  Field = "quantidade"
	FieldMes         Field = "mes"
	FieldStatus      Field = "status"
)

// CanonicalFields lists the fields in export column order.
var CanonicalFields = []Field{
	FieldRegistro,
	FieldDataEntrada,
	FieldSolicitante,
	FieldEndereco,
	FieldZona,
	FieldObjeto,
	FieldQuantidade,
	FieldMes,
	FieldStatus,
}

// suggestionFields are the free-text columns offered as autocomplete sources.
var suggestionFields = map[string]Field{
	"solicitante": FieldSolicitante,
	"endereco":    FieldEndereco,
	"zona":        FieldZona,
	"objeto":      FieldObjeto,
	"mes":         FieldMes,
	"status":      FieldStatus,
}

// SuggestionField resolves a case-insensitive field name to a field that
// supports value suggestions.
func SuggestionField(name string) (Field, bool) {
	f, ok := suggestionFields[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// ServiceRecord is one service request. Every field is always populated:
// unknown text is "", an unknown date is "" and an unknown quantity is 0.
type ServiceRecord struct {
	Registro    string `json:"registro"`
	DataEntrada string `json:"data_entrada"`
	Solicitante string `json:"solicitante"`
	Endereco    string `json:"endereco"`
	Zona        string `json:"zona"`
	Objeto      string `json:"objeto"`
	Quantidade  int    `json:"quantidade"`
	Mes         string `json:"mes"`
	Status      string `json:"status"`
}

// Values returns the record in CanonicalFields order.
func (r ServiceRecord) Values() []any {
	return []any{
		r.Registro,
		r.DataEntrada,
		r.Solicitante,
		r.Endereco,
		r.Zona,
		r.Objeto,
		r.Quantidade,
		r.Mes,
		r.Status,
	}
}
