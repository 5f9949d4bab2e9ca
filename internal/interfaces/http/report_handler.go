package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/clientes-pro/internal/application/customers"
	"github.com/tu-usuario/clientes-pro/internal/application/dto"
)

// ReportHandler maneja la descarga del directorio de clientes en PDF.
type ReportHandler struct {
	uc *customers.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *customers.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Directory godoc
// @Summary      Directorio de clientes en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/customers/report [get]
func (h *ReportHandler) Directory(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.DirectoryPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="directorio-clientes.pdf"`)
	return c.Send(pdfBytes)
}
