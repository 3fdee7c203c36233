package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sutram/service-registry/internal/core/domain"
)

// Writer encodes records for download. It satisfies ports.RecordExporter.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func header() []string {
	h := make([]string, len(domain.CanonicalFields))
	for i, f := range domain.CanonicalFields {
		h[i] = string(f)
	}
	return h
}

// WriteCSV writes a UTF-8, comma-separated file with canonical headers.
func (Writer) WriteCSV(w io.Writer, records []domain.ServiceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header()); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Registro,
			r.DataEntrada,
			r.Solicitante,
			r.Endereco,
			r.Zona,
			r.Objeto,
			strconv.Itoa(r.Quantidade),
			r.Mes,
			r.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with canonical headers.
func (Writer) WriteXLSX(w io.Writer, records []domain.ServiceRecord) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	h := header()
	headerRow := make([]any, len(h))
	for i, v := range h {
		headerRow[i] = v
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.Values()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}
