package handler

import (
	"go-catalog-admin/internal/service"
	"go-catalog-admin/internal/upload"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service  service.ProductService
	defaults service.PageDefaults
}

func NewProductHandler(s service.ProductService, defaults service.PageDefaults) *ProductHandler {
	return &ProductHandler{service: s, defaults: defaults}
}

// imageFrom returns the uploaded "image" part, or nil when none was sent.
func imageFrom(c *fiber.Ctx) *upload.File {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return upload.FromFileHeader(fh)
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	var raw service.ListQuery
	if err := c.QueryParser(&raw); err != nil {
		return badBody(err)
	}

	page, err := h.service.ListProducts(c.UserContext(), service.ParseListQuery(raw, h.defaults))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var form service.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(err)
	}

	id, err := h.service.CreateProduct(c.UserContext(), form, imageFrom(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": "Product added"})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form service.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badBody(err)
	}

	if err := h.service.UpdateProduct(c.UserContext(), id, form, imageFrom(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product updated"})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
