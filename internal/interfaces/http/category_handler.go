package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/application/usecase"
	"github.com/jhoicas/categories-api/pkg/logger"
)

const msgCategoryNotFound = "categoría no encontrada"

// CategoryHandler maneja las peticiones HTTP para el recurso Category.
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler construye el handler inyectando el caso de uso.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar categorías
// @Description  Todas las categorías en orden de creación.
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/ [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, msgCategoryNotFound)
	}
	return c.JSON(out)
}

// Retrieve godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/ [get]
func (h *CategoryHandler) Retrieve(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, msgCategoryNotFound)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryInput  true  "name, company y parent_category opcional"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories/ [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	in, ok, err := h.parseInput(c)
	if !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, msgCategoryNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar categoría
// @Description  name y company son requeridos; company debe coincidir con la actual.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.CategoryInput  true  "Datos completos"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/ [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// PartialUpdate godoc
// @Summary      Actualizar categoría parcialmente
// @Description  Los campos ausentes no cambian; parent_category null elimina el padre.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.CategoryInput  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/ [patch]
func (h *CategoryHandler) PartialUpdate(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *CategoryHandler) update(c *fiber.Ctx, partial bool) error {
	in, ok, err := h.parseInput(c)
	if !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, partial)
	if err != nil {
		return respondError(c, h.log, err, msgCategoryNotFound)
	}
	return c.JSON(out)
}

// Destroy godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/ [delete]
func (h *CategoryHandler) Destroy(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err, msgCategoryNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseInput decodifica el cuerpo como objeto JSON. Si ok es false la respuesta ya fue escrita.
// Los errores de tipo por campo los reporta el caso de uso, después de verificar que el id exista.
func (h *CategoryHandler) parseInput(c *fiber.Ctx) (dto.CategoryInput, bool, error) {
	var raw map[string]json.RawMessage
	if err := c.BodyParser(&raw); err != nil || raw == nil {
		return dto.CategoryInput{}, false, invalidBody(c)
	}
	return dto.ParseCategoryInput(raw), true, nil
}
