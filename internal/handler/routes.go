package handler

import (
	"strconv"

	"go-catalog-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseID reads the :id path parameter as a positive integer.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, &service.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return uint(id), nil
}

func badBody(err error) error {
	return &service.ValidationError{Field: "body", Message: "malformed request: " + err.Error()}
}

// Register mounts the catalog API under /api.
func Register(app fiber.Router, products *ProductHandler, lookups ...*LookupHandler) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Get("/products", products.GetProducts)
	api.Get("/products/:id", products.GetProduct)
	api.Post("/products", products.CreateProduct)
	api.Put("/products/:id", products.UpdateProduct)
	api.Delete("/products/:id", products.DeleteProduct)

	for _, h := range lookups {
		group := api.Group("/" + h.service.Kind().Table())
		group.Get("/", h.List)
		group.Get("/:id", h.Get)
		group.Post("/", h.Create)
		group.Put("/:id", h.Update)
		group.Delete("/:id", h.Delete)
	}
}
