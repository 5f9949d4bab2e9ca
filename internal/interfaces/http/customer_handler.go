package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/clientes-pro/internal/application/customers"
	"github.com/tu-usuario/clientes-pro/internal/application/dto"
	"github.com/tu-usuario/clientes-pro/internal/domain"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *customers.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Param        limit   query  int  false  "máx resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	return c.JSON(h.uc.List(page.Limit, page.Offset))
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Description  Valida el candidato contra las reglas de jerarquía; si hay
// @Description  violaciones devuelve 422 con la lista completa y no escribe.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveCustomerRequest  true  "cliente"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, violations, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(violations) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{Code: "VALIDATION", Errors: violations})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  Reemplaza campos, direcciones y contactos; child_ids re-enlaza
// @Description  la jerarquía (desenlazar antes de enlazar).
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del cliente"
// @Param        body  body  dto.SaveCustomerRequest  true  "cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, violations, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(violations) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{Code: "VALIDATION", Errors: violations})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Si el cliente es PARENT sus hijos quedan desenlazados como
// @Description  cuentas independientes; nunca se eliminan en cascada. Un ID
// @Description  inexistente responde 204 igual: la ausencia ya se cumple.
// @Tags         customers
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Validate godoc
// @Summary      Validar cliente sin escribir
// @Description  Dry-run de las reglas de validación; exclude_id permite validar
// @Description  una actualización contra sí misma.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        exclude_id  query  string                   false  "ID a excluir del chequeo de unicidad"
// @Param        body        body   dto.SaveCustomerRequest  true   "cliente"
// @Success      200  {object}  dto.ValidationResponse
// @Router       /api/customers/validate [post]
func (h *CustomerHandler) Validate(c *fiber.Ctx) error {
	var in dto.SaveCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	violations := h.uc.Validate(in, c.Query("exclude_id"))
	return c.JSON(dto.ValidationResponse{Valid: len(violations) == 0, Errors: violations})
}
