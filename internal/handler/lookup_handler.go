package handler

import (
	"go-catalog-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LookupHandler serves one lookup table. The same handler type backs
// categories, materials, colors and sizes.
type LookupHandler struct {
	service service.LookupService
}

func NewLookupHandler(s service.LookupService) *LookupHandler {
	return &LookupHandler{service: s}
}

func (h *LookupHandler) label() string {
	return h.service.Kind().Label()
}

func (h *LookupHandler) List(c *fiber.Ctx) error {
	rows, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (h *LookupHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	row, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(row)
}

func (h *LookupHandler) Create(c *fiber.Ctx) error {
	var req service.LookupRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	id, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": h.label() + " added"})
}

func (h *LookupHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req service.LookupRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	if err := h.service.Update(c.UserContext(), id, req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.label() + " updated"})
}

func (h *LookupHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.label() + " deleted"})
}
