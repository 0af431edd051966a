package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de insumos, movimientos de stock y su ledger.
type InventoryHandler struct {
	svc *cafe.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *cafe.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Create godoc
// @Summary      Crear insumo
// @Description  initial_stock, si llega, registra el checkpoint "Initiate Stock".
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "Datos del insumo"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	item, err := h.svc.AddInventoryItem(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInventoryItemResponse(item))
}

// List godoc
// @Summary      Listar insumos
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.ListInventoryItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toInventoryItemResponse(it))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener insumo por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.svc.GetInventoryItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toInventoryItemResponse(item))
}

// Update godoc
// @Summary      Actualizar insumo
// @Description  Un cambio de price_per_unit recalcula el costo directo de los menús que lo usan.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InventoryItemUpdatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryItemRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	item, rc, err := h.svc.UpdateInventoryItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryItemUpdatedResponse{Item: toInventoryItemResponse(item), RecalcResponse: toRecalcResponse(rc)})
}

// Delete godoc
// @Summary      Eliminar insumo
// @Description  Falla con 400 si alguna receta usa el insumo.
// @Tags         inventory
// @Param        id   path  string  true  "ID del insumo"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.DeleteInventoryItem(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recalculate godoc
// @Summary      Recalcular stock desde el ledger
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/recalculate [post]
func (h *InventoryHandler) Recalculate(c *fiber.Ctx) error {
	id := c.Params("id")
	stock, err := h.svc.Recalculate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockLevelResponse{InventoryItemID: id, CurrentStock: stock})
}

// CheckStock godoc
// @Summary      Verificar stock de un insumo
// @Tags         inventory
// @Produce      json
// @Param        id        path   string  true   "ID del insumo"
// @Param        quantity  query  string  false  "Cantidad requerida"  default(1)
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/check [get]
func (h *InventoryHandler) CheckStock(c *fiber.Ctx) error {
	qty, ok := queryQuantity(c)
	if !ok {
		return invalidQuery(c, "quantity")
	}
	check, err := h.svc.CheckStockForInventory(c.UserContext(), c.Params("id"), qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockCheckResponse(check))
}

// Deduct godoc
// @Summary      Descontar stock de un insumo
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.StockMovementRequest  true  "quantity > 0"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/inventory/items/{id}/deduct [post]
func (h *InventoryHandler) Deduct(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	res, err := h.svc.DeductStockByInventoryItem(c.UserContext(), c.Params("id"), inventory.MovementFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// Restock godoc
// @Summary      Reponer stock de un insumo
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.StockMovementRequest  true  "quantity > 0"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	res, err := h.svc.RestockByInventoryItem(c.UserContext(), c.Params("id"), inventory.MovementFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// ReceiveSupply godoc
// @Summary      Recepción de proveedor
// @Description  unit_cost actualiza el costo por unidad al promedio ponderado y recalcula los menús afectados.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.ReceiveSupplyRequest  true  "quantity > 0, unit_cost opcional"
// @Success      201   {object}  dto.InventoryItemUpdatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/supply [post]
func (h *InventoryHandler) ReceiveSupply(c *fiber.Ctx) error {
	var in dto.ReceiveSupplyRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	item, rc, err := h.svc.ReceiveSupply(c.UserContext(), c.Params("id"), inventory.MovementFromRequest(in.StockMovementRequest), in.UnitCost)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InventoryItemUpdatedResponse{Item: toInventoryItemResponse(item), RecalcResponse: toRecalcResponse(rc)})
}

// ManualReport godoc
// @Summary      Conteo físico
// @Description  Registra un checkpoint con el valor contado y recalcula el stock.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.ManualReportRequest  true  "amount >= 0"
// @Success      201   {object}  dto.StockLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/manual-report [post]
func (h *InventoryHandler) ManualReport(c *fiber.Ctx) error {
	var in dto.ManualReportRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id := c.Params("id")
	stock, err := h.svc.ManualReport(c.UserContext(), inventory.ManualReportFromRequest(id, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockLevelResponse{InventoryItemID: id, CurrentStock: stock})
}

// Ledger godoc
// @Summary      Ledger de stock del insumo
// @Description  Más recientes primero; from/to (RFC3339) acotan por fecha, ambos inclusive.
// @Tags         inventory
// @Produce      json
// @Param        id    path   string  true   "ID del insumo"
// @Param        from  query  string  false  "Desde (RFC3339)"
// @Param        to    query  string  false  "Hasta (RFC3339)"
// @Success      200   {array}   dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/ledger [get]
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	from, ok := queryTime(c, "from")
	if !ok {
		return invalidQuery(c, "from")
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return invalidQuery(c, "to")
	}
	recs, err := h.svc.ListLedger(c.UserContext(), c.Params("id"), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockChangeResponses(recs))
}

// LedgerByForeignID godoc
// @Summary      Movimientos de una orden o venta
// @Tags         inventory
// @Produce      json
// @Param        foreign_id  query  string  true  "Orden, venta o uso"
// @Success      200  {array}   dto.StockChangeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/ledger [get]
func (h *InventoryHandler) LedgerByForeignID(c *fiber.Ctx) error {
	foreignID := c.Query("foreign_id")
	if foreignID == "" {
		return invalidQuery(c, "foreign_id")
	}
	recs, err := h.svc.ListLedgerByForeignID(c.UserContext(), foreignID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockChangeResponses(recs))
}

// Forecast godoc
// @Summary      Proyección de stock
// @Description  stock actual - días × consumo diario.
// @Tags         inventory
// @Produce      json
// @Param        id    path   string  true   "ID del insumo"
// @Param        days  query  int     false  "Días a proyectar"  default(7)
// @Success      200   {object}  dto.ForecastResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/forecast [get]
func (h *InventoryHandler) Forecast(c *fiber.Ctx) error {
	id := c.Params("id")
	days := c.QueryInt("days", 7)
	stock, err := h.svc.ForecastInventory(c.UserContext(), id, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ForecastResponse{InventoryItemID: id, Days: days, ForecastStock: stock})
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Insumos en o bajo su umbral (stock de seguridad + días de entrega × consumo diario),
//
//	ordenados por mayor déficit.
//
// @Tags         inventory
// @Produce      json
// @Param        ids  query  string  false  "IDs separados por coma. Vacío = todos."
// @Success      200  {array}  dto.LowStockAlertResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var ids []string
	if raw := c.Query("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	alerts, err := h.svc.LowStockAlerts(c.UserContext(), ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toLowStockResponses(alerts))
}

// queryQuantity lee ?quantity= como decimal (1 si no llega).
func queryQuantity(c *fiber.Ctx) (decimal.Decimal, bool) {
	raw := c.Query("quantity")
	if raw == "" {
		return decimal.NewFromInt(1), true
	}
	q, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return q, true
}

// queryTime lee un parámetro RFC3339 opcional.
func queryTime(c *fiber.Ctx, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
