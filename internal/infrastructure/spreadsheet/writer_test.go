package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ingest"
)

var sampleRecords = []domain.ServiceRecord{
	{
		Registro:    "1",
		DataEntrada: "2024-01-15",
		Solicitante: "Maria, filha",
		Endereco:    "Rua São João, 12",
		Zona:        "Sul",
		Objeto:      "Poda",
		Quantidade:  3,
		Mes:         "Janeiro",
		Status:      "Concluído",
	},
	{Registro: "2", Quantidade: 0},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteCSV(&buf, sampleRecords))

	want := "registro,data_entrada,solicitante,endereco,zona,objeto,quantidade,mes,status\n" +
		"1,2024-01-15,\"Maria, filha\",\"Rua São João, 12\",Sul,Poda,3,Janeiro,Concluído\n" +
		"2,,,,,,0,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_ReimportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteCSV(&buf, sampleRecords))

	tbl, err := newTestReader().Read(ingest.FormatCSV, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sampleRecords, tbl.Records())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteXLSX(&buf, sampleRecords))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "registro", rows[0][0])
	assert.Equal(t, "status", rows[0][8])
	assert.Equal(t, "Rua São João, 12", rows[1][3])
	assert.Equal(t, "3", rows[1][6])
}

func TestWriteXLSX_ReimportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteXLSX(&buf, sampleRecords))

	tbl, err := newTestReader().Read(ingest.FormatXLSX, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sampleRecords, tbl.Records())
}
