package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// MenuHandler maneja las peticiones HTTP de la carta, sus recetas y su historial de precios.
type MenuHandler struct {
	svc *cafe.Service
}

// NewMenuHandler construye el handler.
func NewMenuHandler(svc *cafe.Service) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// List godoc
// @Summary      Carta con disponibilidad
// @Description  Cada menú trae number_available (null = la receta no limita) y sus líneas de receta.
// @Tags         menu
// @Produce      json
// @Success      200  {array}  dto.MenuWithAvailabilityResponse
// @Router       /api/menu [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.GetMenuWithAvailability(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MenuWithAvailabilityResponse, 0, len(list))
	for i := range list {
		out = append(out, toMenuWithAvailability(&list[i]))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear menú
// @Description  Crea el menú, su receta y su pronóstico opcional, y registra el primer precio estimado.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuItemRequest  true  "Datos del menú"
// @Success      201   {object}  dto.CreateMenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	menu, est, err := h.svc.CreateNewMenuItem(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateMenuItemResponse{
		Menu:     toMenuResponse(menu),
		Estimate: toEstimateResponse(est),
	})
}

// GetByID godoc
// @Summary      Obtener menú
// @Tags         menu
// @Produce      json
// @Param        id   path  string  true  "ID del menú"
// @Success      200  {object}  dto.MenuWithAvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.svc.GetMenu(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMenuWithAvailability(view))
}

// Update godoc
// @Summary      Actualizar menú
// @Description  price o profit_margin agregan un registro de precio (price_change_category, "Manual Price Change" por defecto).
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.UpdateMenuItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	menu, err := h.svc.UpdateMenuItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMenuResponse(menu))
}

// CheckStock godoc
// @Summary      Verificar insumos para vender un menú
// @Tags         menu
// @Produce      json
// @Param        id        path   string  true   "ID del menú"
// @Param        quantity  query  string  false  "Unidades"  default(1)
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/check [get]
func (h *MenuHandler) CheckStock(c *fiber.Ctx) error {
	qty, ok := queryQuantity(c)
	if !ok {
		return invalidQuery(c, "quantity")
	}
	check, err := h.svc.CheckStockForMenu(c.UserContext(), c.Params("id"), qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockCheckResponse(check))
}

// Deduct godoc
// @Summary      Descontar insumos de una venta
// @Description  Si falta algún insumo no se escribe nada y se responde 409 con el faltante.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.StockMovementRequest  true  "quantity = unidades vendidas"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/menu/{id}/deduct [post]
func (h *MenuHandler) Deduct(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	res, err := h.svc.DeductStockByMenu(c.UserContext(), c.Params("id"), inventory.MovementFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// Restock godoc
// @Summary      Devolver al inventario los insumos de un menú
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.StockMovementRequest  true  "quantity = unidades"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/restock [post]
func (h *MenuHandler) Restock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	res, err := h.svc.RestockByMenu(c.UserContext(), c.Params("id"), inventory.MovementFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// AddRecipe godoc
// @Summary      Agregar línea de receta
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.CreateRecipeRequest  true  "Insumo y consumo por unidad"
// @Success      201   {object}  dto.RecipeChangedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/recipe [post]
func (h *MenuHandler) AddRecipe(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	recipe, rc, err := h.svc.AddRecipe(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.recipeChanged(c, recipe, rc))
}

// UpdateRecipe godoc
// @Summary      Cambiar línea de receta
// @Description  Un cambio de amount_usage recalcula el costo directo del menú.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del menú"
// @Param        itemId   path  string  true  "ID del insumo"
// @Param        body     body  dto.UpdateRecipeRequest  true  "Campos a actualizar"
// @Success      200      {object}  dto.RecipeChangedResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/recipe/{itemId} [put]
func (h *MenuHandler) UpdateRecipe(c *fiber.Ctx) error {
	var in dto.UpdateRecipeRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	recipe, rc, err := h.svc.UpdateRecipe(c.UserContext(), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.recipeChanged(c, recipe, rc))
}

// DeleteRecipe godoc
// @Summary      Eliminar línea de receta
// @Tags         menu
// @Produce      json
// @Param        id      path  string  true  "ID del menú"
// @Param        itemId  path  string  true  "ID del insumo"
// @Success      200     {object}  dto.RecalcResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/recipe/{itemId} [delete]
func (h *MenuHandler) DeleteRecipe(c *fiber.Ctx) error {
	rc, err := h.svc.DeleteRecipe(c.UserContext(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toRecalcResponse(rc))
}

func (h *MenuHandler) recipeChanged(c *fiber.Ctx, recipe *entity.Recipe, rc cafe.Recalc) dto.RecipeChangedResponse {
	name := ""
	if item, err := h.svc.GetInventoryItem(c.UserContext(), recipe.InventoryItemID); err == nil {
		name = item.Name
	}
	return dto.RecipeChangedResponse{Recipe: toRecipeLineResponse(recipe, name), RecalcResponse: toRecalcResponse(rc)}
}

// SetPrice godoc
// @Summary      Cambio manual de precio
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.ManualPriceRequest  true  "Nuevo precio"
// @Success      201   {object}  dto.EstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/price [post]
func (h *MenuHandler) SetPrice(c *fiber.Ctx) error {
	var in dto.ManualPriceRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	rec, err := h.svc.CalculateManualPriceChange(c.UserContext(), c.Params("id"), in.Price, in.Category)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEstimateResponse(rec))
}

// PriceHistory godoc
// @Summary      Historial de precios
// @Tags         menu
// @Produce      json
// @Param        id      path   string  true   "ID del menú"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}   dto.EstimateResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/prices [get]
func (h *MenuHandler) PriceHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidQuery(c, "limit/offset")
	}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	recs, err := h.svc.PriceHistory(c.UserContext(), c.Params("id"), page.Offset+page.Limit)
	if err != nil {
		return writeError(c, err)
	}
	if page.Offset >= len(recs) {
		recs = nil
	} else {
		recs = recs[page.Offset:]
	}
	return c.JSON(toEstimateResponses(recs))
}
