package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/api/metrics"
	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ports"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RecordHandler struct {
	recordService ports.RecordService
	exporter      ports.RecordExporter
}

func NewRecordHandler(recordService ports.RecordService, exporter ports.RecordExporter) *RecordHandler {
	return &RecordHandler{recordService: recordService, exporter: exporter}
}

type recordRequest struct {
	Registro    string `form:"registro"`
	DataEntrada string `form:"data_entrada"`
	Solicitante string `form:"solicitante"`
	Endereco    string `form:"endereco"`
	Zona        string `form:"zona"`
	Objeto      string `form:"objeto"`
	Quantidade  string `form:"quantidade"`
	Mes         string `form:"mes"`
	Status      string `form:"status"`
}

// listResponse matches the {"data": [...]} envelope the data table reads.
type listResponse struct {
	Data []domain.ServiceRecord `json:"data"`
}

func suggestionFieldNames() []string {
	return []string{
		string(domain.FieldSolicitante),
		string(domain.FieldEndereco),
		string(domain.FieldZona),
		string(domain.FieldObjeto),
		string(domain.FieldMes),
		string(domain.FieldStatus),
	}
}

func (h *RecordHandler) CreateForm(c echo.Context) error {
	return render(c, http.StatusOK, "cadastro.html", Page{
		Title:            "Cadastro",
		SuggestionFields: suggestionFieldNames(),
	})
}

// Create stores one manually entered record. Bad dates and quantities are
// coerced, never rejected.
func (h *RecordHandler) Create(c echo.Context) error {
	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	_, err := h.recordService.Create(c.Request().Context(), ports.RecordInput{
		Registro:    req.Registro,
		DataEntrada: req.DataEntrada,
		Solicitante: req.Solicitante,
		Endereco:    req.Endereco,
		Zona:        req.Zona,
		Objeto:      req.Objeto,
		Quantidade:  req.Quantidade,
		Mes:         req.Mes,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return redirectWithFlash(c, "/cadastro", FlashSuccess, "Serviço salvo com sucesso!")
}

func (h *RecordHandler) DataPage(c echo.Context) error {
	return render(c, http.StatusOK, "dados.html", Page{Title: "Dados"})
}

func (h *RecordHandler) Dashboard(c echo.Context) error {
	return render(c, http.StatusOK, "painel.html", Page{Title: "Painel"})
}

// List serves every record, newest first.
//
// @Summary      List service records
// @Description  Every stored record, newest first, wrapped for the data table.
// @Tags         records
// @Produce      json
// @Success      200  {object}  listResponse
// @Failure      302  "Redirect to /login without a session"
// @Failure      500  {object}  map[string]string
// @Router       /dados.json [get]
func (h *RecordHandler) List(c echo.Context) error {
	records, err := h.recordService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Data: records})
}

// Suggestions serves autocomplete values; unknown fields get [].
//
// @Summary      Autocomplete values for a field
// @Description  Distinct non-empty values of one text field, sorted. Unknown fields yield an empty list.
// @Tags         records
// @Produce      json
// @Param        campo  path      string  true  "Field name (solicitante, endereco, zona, objeto, mes, status)"
// @Success      200    {array}   string
// @Failure      302    "Redirect to /login without a session"
// @Failure      500    {object}  map[string]string
// @Router       /api/sugestoes/{campo} [get]
func (h *RecordHandler) Suggestions(c echo.Context) error {
	values, err := h.recordService.Suggestions(c.Request().Context(), c.Param("campo"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}

// ExportCSV handles GET /exportar_csv.
//
// @Summary      Download records as CSV
// @Tags         export
// @Produce      text/csv
// @Success      200  {file}    file  "dados.csv attachment"
// @Failure      302  "Redirect to /login without a session"
// @Failure      500  {object}  map[string]string
// @Router       /exportar_csv [get]
func (h *RecordHandler) ExportCSV(c echo.Context) error {
	return h.export(c, "dados.csv", "text/csv; charset=utf-8", h.exporter.WriteCSV)
}

// ExportXLSX handles GET /exportar_excel.
//
// @Summary      Download records as an Excel workbook
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file  "dados.xlsx attachment"
// @Failure      302  "Redirect to /login without a session"
// @Failure      500  {object}  map[string]string
// @Router       /exportar_excel [get]
func (h *RecordHandler) ExportXLSX(c echo.Context) error {
	return h.export(c, "dados.xlsx", mimeXLSX, h.exporter.WriteXLSX)
}

// export buffers the whole file so an encoding failure can still become an
// error response.
func (h *RecordHandler) export(c echo.Context, filename, contentType string, write func(io.Writer, []domain.ServiceRecord) error) error {
	records, err := h.recordService.List(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := write(&buf, records); err != nil {
		return fmt.Errorf("export %s: %w", filename, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func (h *RecordHandler) DeleteAll(c echo.Context) error {
	n, err := h.recordService.DeleteAll(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.RecordsDeletedTotal.Add(float64(n))
	return redirectWithFlash(c, "/dados", FlashWarning, "Todos os registros foram apagados.")
}
