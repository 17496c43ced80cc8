package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/xrechnung-api/internal/application/dto"
	"github.com/jhoicas/xrechnung-api/internal/application/einvoice"
	"github.com/jhoicas/xrechnung-api/internal/domain"
	domxr "github.com/jhoicas/xrechnung-api/internal/domain/xrechnung"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
)

// XRechnungHandler endpoints de generación y archivo (protegido).
type XRechnungHandler struct {
	svc *einvoice.Service
}

// NewXRechnungHandler construye el handler.
func NewXRechnungHandler(svc *einvoice.Service) *XRechnungHandler {
	return &XRechnungHandler{svc: svc}
}

// Validate godoc
// @Summary      Validar factura (EN 16931 / XRechnung)
// @Description  Comprueba los términos de negocio obligatorios sin generar XML.
// @Tags         xrechnung
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.InvoiceRequest  true  "factura"
// @Success      200   {object}  dto.ValidationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/xrechnung/validate [post]
func (h *XRechnungHandler) Validate(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	return c.JSON(validationResponse(h.svc.Validate(in.ToEntity())))
}

// Generate godoc
// @Summary      Generar XML CII
// @Description  Devuelve el XML sin archivarlo. En modo estricto una factura incompleta da 422.
// @Tags         xrechnung
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.InvoiceRequest  true  "factura"
// @Success      200   {object}  dto.GenerateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/xrechnung/generate [post]
func (h *XRechnungHandler) Generate(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	res, err := h.svc.Generate(c.UserContext(), in.ToEntity())
	if err != nil {
		var report *domxr.Report
		if res != nil {
			report = &res.Report
		}
		return serviceError(c, err, report)
	}
	return c.JSON(dto.GenerateResponse{
		XML:                res.XML,
		SHA256:             res.SHA256,
		ValidationResponse: validationResponse(res.Report),
	})
}

// Export godoc
// @Summary      Exportar factura
// @Description  Genera, archiva y registra. Solo admin y buchhaltung.
// @Tags         xrechnung
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.InvoiceRequest  true  "factura"
// @Success      201   {object}  dto.ExportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/xrechnung/export [post]
func (h *XRechnungHandler) Export(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	res, err := h.svc.Export(c.UserContext(), in.ToEntity())
	if err != nil {
		return serviceError(c, err, reportOf(res))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExportResponse{
		InvoiceNumber:      res.InvoiceNumber,
		Path:               res.Path,
		SHA256:             res.SHA256,
		CanonicalSHA256:    res.CanonicalSHA256,
		ObjectKey:          res.ObjectKey,
		ValidationResponse: validationResponse(res.Report),
	})
}

// GetByNumber godoc
// @Summary      Descargar XML archivado
// @Description  Devuelve el archivo tal cual se escribió; 409 si el hash no coincide con el registro.
// @Tags         xrechnung
// @Produce      xml
// @Security     Bearer
// @Param        number  path  string  true  "número de factura (BT-1)"
// @Success      200     {file}    file
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/xrechnung/{number} [get]
func (h *XRechnungHandler) GetByNumber(c *fiber.Ctx) error {
	number, err := url.PathUnescape(c.Params("number"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "número de factura mal codificado"})
	}
	data, err := h.svc.Load(c.UserContext(), number)
	if err != nil {
		return serviceError(c, err, nil)
	}
	// Attachment codifica el nombre; el número viene del cliente.
	c.Attachment(xrechnung.Filename(number))
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(data)
}

func validationResponse(r domxr.Report) dto.ValidationResponse {
	return dto.ValidationResponse{Valid: r.Valid, Errors: r.Errors}
}

func bodyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, xrechnung.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: err.Error()})
	case errors.Is(err, xrechnung.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
}

func reportOf(res *einvoice.ExportResult) *domxr.Report {
	if res == nil {
		return nil
	}
	return &res.Report
}

func serviceError(c *fiber.Ctx, err error, report *domxr.Report) error {
	switch {
	case errors.Is(err, domain.ErrMissingRequiredField):
		body := dto.ErrorResponse{Code: "MISSING_REQUIRED_FIELD", Message: "faltan términos de negocio obligatorios"}
		if report != nil {
			body.Details = report.Errors
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
	case errors.Is(err, xrechnung.ErrInvalidDate):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	case errors.Is(err, xrechnung.ErrInvalidText):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_TEXT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "xrechnung no encontrada"})
	case errors.Is(err, domain.ErrDigestMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DIGEST_MISMATCH", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
