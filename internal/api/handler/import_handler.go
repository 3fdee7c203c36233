package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/api/metrics"
	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ingest"
	"github.com/sutram/service-registry/internal/core/ports"
)

const (
	uploadField = "arquivo"
	dataPath    = "/dados"
)

type ImportHandler struct {
	importService ports.ImportService
}

func NewImportHandler(importService ports.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Import ingests one uploaded file and always lands back on the data page
// with a message describing the outcome.
func (h *ImportHandler) Import(c echo.Context) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return redirectWithFlash(c, dataPath, FlashWarning, "Selecione um arquivo.")
	}
	if fh.Filename == "" {
		return redirectWithFlash(c, dataPath, FlashWarning, "Arquivo inválido.")
	}

	format := "unknown"
	if f, ok := ingest.FormatFromFilename(fh.Filename); ok {
		format = string(f)
	}

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	res, err := h.importService.Import(c.Request().Context(), fh.Filename, data)
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		metrics.ImportsTotal.WithLabelValues(format, metrics.ResultUnsupported).Inc()
		return redirectWithFlash(c, dataPath, FlashDanger, "Formato não suportado. Use .csv, .xls ou .xlsx.")
	case errors.Is(err, domain.ErrUnreadableFile):
		metrics.ImportsTotal.WithLabelValues(format, metrics.ResultUnreadable).Inc()
		return redirectWithFlash(c, dataPath, FlashDanger, "Não foi possível ler o arquivo.")
	case err != nil:
		metrics.ImportsTotal.WithLabelValues(format, metrics.ResultError).Inc()
		return err
	}

	metrics.ImportsTotal.WithLabelValues(format, metrics.ResultOK).Inc()
	metrics.ImportedRowsTotal.WithLabelValues(format).Add(float64(res.Rows))
	metrics.ImportDuration.WithLabelValues(format).Observe(res.Duration.Seconds())

	return redirectWithFlash(c, dataPath, FlashSuccess, fmt.Sprintf("Importação concluída: %d registro(s).", res.Rows))
}
