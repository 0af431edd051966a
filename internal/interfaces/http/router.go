package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Cafe    *cafe.Service
	Reports *cafe.Reports
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Insumos y movimientos de stock
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Cafe)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/ledger", inventoryHandler.LedgerByForeignID)
	items := inv.Group("/items")
	items.Post("/", inventoryHandler.Create)
	items.Get("/", inventoryHandler.List)
	items.Get("/:id", inventoryHandler.GetByID)
	items.Put("/:id", inventoryHandler.Update)
	items.Delete("/:id", inventoryHandler.Delete)
	items.Post("/:id/recalculate", inventoryHandler.Recalculate)
	items.Get("/:id/check", inventoryHandler.CheckStock)
	items.Post("/:id/deduct", inventoryHandler.Deduct)
	items.Post("/:id/restock", inventoryHandler.Restock)
	items.Post("/:id/supply", inventoryHandler.ReceiveSupply)
	items.Post("/:id/manual-report", inventoryHandler.ManualReport)
	items.Get("/:id/ledger", inventoryHandler.Ledger)
	items.Get("/:id/forecast", inventoryHandler.Forecast)

	// Proveedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.Cafe)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	// Carta, recetas y precios
	menu := api.Group("/menu")
	menuHandler := NewMenuHandler(deps.Cafe)
	if deps.Reports != nil {
		reportHandler := NewReportHandler(deps.Reports)
		menu.Get("/price-sheet.pdf", reportHandler.PriceSheet)
		menu.Get("/:id/prices.xlsx", reportHandler.PriceHistory)
	}
	menu.Get("/", menuHandler.List)
	menu.Post("/", menuHandler.Create)
	menu.Get("/:id", menuHandler.GetByID)
	menu.Put("/:id", menuHandler.Update)
	menu.Get("/:id/check", menuHandler.CheckStock)
	menu.Post("/:id/deduct", menuHandler.Deduct)
	menu.Post("/:id/restock", menuHandler.Restock)
	menu.Post("/:id/recipe", menuHandler.AddRecipe)
	menu.Put("/:id/recipe/:itemId", menuHandler.UpdateRecipe)
	menu.Delete("/:id/recipe/:itemId", menuHandler.DeleteRecipe)
	menu.Get("/:id/prices", menuHandler.PriceHistory)
	menu.Post("/:id/price", menuHandler.SetPrice)

	// Recálculos del motor de costeo
	pricing := api.Group("/pricing")
	pricingHandler := NewPricingHandler(deps.Cafe)
	pricing.Post("/direct-cost", pricingHandler.DirectCost)
	pricing.Post("/indirect-cost", pricingHandler.IndirectCost)
	pricing.Get("/indirect-cost", pricingHandler.IndirectBreakdown)
	pricing.Post("/forecast", pricingHandler.Forecast)

	// Fuentes de costo indirecto y pronósticos
	costs := api.Group("/costs")
	costHandler := NewCostSourceHandler(deps.Cafe)
	costs.Post("/rent", costHandler.Rent)
	costs.Post("/bills", costHandler.Bills)
	costs.Post("/equipment", costHandler.Equipment)
	costs.Post("/positions", costHandler.Position)
	costs.Post("/shifts", costHandler.Shift)
	costs.Post("/forecasts", costHandler.SalesForecast)
}
