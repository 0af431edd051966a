package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
)

// SupplierHandler maneja las peticiones HTTP de proveedores.
type SupplierHandler struct {
	svc *cafe.Service
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(svc *cafe.Service) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// Create POST /api/suppliers
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	s, err := h.svc.AddSupplier(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(s))
}

// List GET /api/suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.ListSuppliers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return c.JSON(out)
}
