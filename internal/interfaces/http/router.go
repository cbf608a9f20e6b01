package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/categories-api/internal/application/usecase"
	"github.com/jhoicas/categories-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	CompanyUC  *usecase.CompanyUseCase
	HealthUC   *usecase.HealthUseCase
	AppName    string
	Logger     *logger.Logger
}

// Router registra las rutas de la API. Las rutas aceptan la barra final opcional (StrictRouting desactivado).
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "http")

	if deps.HealthUC != nil {
		app.Get("/health", NewHealthHandler(deps.HealthUC, deps.AppName, log).Health)
	}

	api := app.Group("/api")
	api.Get("/", apiRoot)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.Retrieve)
	categories.Put("/:id", categoryHandler.Update)
	categories.Patch("/:id", categoryHandler.PartialUpdate)
	categories.Delete("/:id", categoryHandler.Destroy)

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
}

// apiRoot godoc
// @Summary      Raíz de la API
// @Description  URLs absolutas de los recursos disponibles.
// @Tags         root
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/ [get]
func apiRoot(c *fiber.Ctx) error {
	base := c.BaseURL()
	return c.JSON(fiber.Map{
		"categories": base + "/api/categories/",
		"companies":  base + "/api/companies/",
	})
}
