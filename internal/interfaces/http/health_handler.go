package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/categories-api/internal/application/usecase"
	"github.com/jhoicas/categories-api/pkg/logger"
)

// HealthHandler expone el estado del servicio.
type HealthHandler struct {
	uc      *usecase.HealthUseCase
	service string
	log     *logger.Logger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(uc *usecase.HealthUseCase, service string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{uc: uc, service: service, log: log}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if err := h.uc.DatabaseReady(c.UserContext()); err != nil {
		h.log.Warn().Err(err).Msg("base de datos no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded", "service": h.service, "database": "unavailable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok", "service": h.service, "database": "ok"})
}
