package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/clientes-pro/internal/application/dto"
	"github.com/tu-usuario/clientes-pro/internal/application/imports"
)

// MaxImportFileSize tamaño máximo aceptado para el archivo CSV (10MB).
const MaxImportFileSize = 10 * 1024 * 1024

// ImportHandler maneja la importación masiva de clientes desde CSV.
type ImportHandler struct {
	uc *imports.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *imports.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Preview godoc
// @Summary      Previsualizar importación CSV
// @Description  Resuelve el archivo contra la población actual (aceptados y
// @Description  rechazos por fila) sin escribir nada.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV"
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/imports/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	data, errResp := readImportFile(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*errResp)
	}
	out, err := h.uc.Preview(data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar clientes desde CSV
// @Description  Resuelve el archivo y agrega los clientes aceptados a la
// @Description  población; las filas rechazadas se reportan por línea y nunca
// @Description  bloquean al resto del lote.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo CSV"
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/imports [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	data, errResp := readImportFile(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(*errResp)
	}
	out, err := h.uc.Import(c.Context(), data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	return c.JSON(out)
}

// readImportFile extrae y lee el campo multipart "file" con tope de tamaño.
func readImportFile(c *fiber.Ctx) ([]byte, *dto.ErrorResponse) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el campo multipart \"file\""}
	}
	if fh.Size > MaxImportFileSize {
		return nil, &dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo supera el tamaño máximo permitido"}
	}
	data, err := readAll(fh)
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"}
	}
	return data, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
