package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeItemRequest línea de receta dentro del alta de un menú.
type RecipeItemRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	AmountUsage     decimal.Decimal `json:"amount_usage"`
	Writer          string          `json:"writer,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// CreateMenuItemRequest body para POST /api/menu.
// ForecastNumber crea un pronóstico de ventas en [ForecastFrom, ForecastTo).
type CreateMenuItemRequest struct {
	Name          string              `json:"name" validate:"required,min=1,max=200"`
	Size          string              `json:"size" validate:"max=50"`
	Category      string              `json:"category" validate:"max=100"`
	ValueAddedTax decimal.Decimal     `json:"value_added_tax"`
	RecipeItems   []RecipeItemRequest `json:"recipe_items" validate:"dive"`
	Price         decimal.Decimal     `json:"price"`
	ProfitMargin  decimal.Decimal     `json:"profit_margin"`
	Description   string              `json:"description,omitempty"`
	Serving       *bool               `json:"serving,omitempty"`
	Forecast      *ForecastWindow     `json:"forecast,omitempty"`
}

// ForecastWindow pronóstico de unidades vendidas en una ventana.
type ForecastWindow struct {
	Number   int64     `json:"number" validate:"min=1"`
	FromDate time.Time `json:"from_date" validate:"required"`
	ToDate   time.Time `json:"to_date" validate:"required"`
}

// UpdateMenuItemRequest edición parcial. Price o ProfitMargin disparan un cambio manual de precio.
type UpdateMenuItemRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Size                *string          `json:"size" validate:"omitempty,max=50"`
	Category            *string          `json:"category"`
	ValueAddedTax       *decimal.Decimal `json:"value_added_tax"`
	Serving             *bool            `json:"serving"`
	Description         *string          `json:"description"`
	Price               *decimal.Decimal `json:"price"`
	ProfitMargin        *decimal.Decimal `json:"profit_margin"`
	PriceChangeCategory string           `json:"price_change_category,omitempty" validate:"max=50"`
}

// MenuResponse salida de un menú.
type MenuResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Size           string           `json:"size"`
	Category       string           `json:"category"`
	CurrentPrice   decimal.Decimal  `json:"current_price"`
	SuggestedPrice *decimal.Decimal `json:"suggested_price"`
	ValueAddedTax  decimal.Decimal  `json:"value_added_tax"`
	Serving        bool             `json:"serving"`
	Description    string           `json:"description,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// RecipeLineResponse línea de receta.
type RecipeLineResponse struct {
	MenuID          string          `json:"menu_id"`
	InventoryItemID string          `json:"inventory_item_id"`
	InventoryItem   string          `json:"inventory_item,omitempty"`
	AmountUsage     decimal.Decimal `json:"amount_usage"`
	Writer          string          `json:"writer,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// MenuWithAvailabilityResponse menú con unidades producibles (nil = sin límite por receta).
type MenuWithAvailabilityResponse struct {
	MenuResponse
	NumberAvailable *int64               `json:"number_available"`
	Recipe          []RecipeLineResponse `json:"recipe"`
}

// CreateMenuItemResponse menú creado y su última estimación de precio.
type CreateMenuItemResponse struct {
	Menu     MenuResponse      `json:"menu"`
	Estimate *EstimateResponse `json:"estimate"`
}

// CreateRecipeRequest body para POST /api/menu/:id/recipe.
type CreateRecipeRequest struct {
	InventoryItemID string          `json:"inventory_item_id" validate:"required"`
	AmountUsage     decimal.Decimal `json:"amount_usage"`
	Writer          string          `json:"writer,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// UpdateRecipeRequest cambio de consumo de una línea de receta.
type UpdateRecipeRequest struct {
	AmountUsage *decimal.Decimal `json:"amount_usage"`
	Writer      *string          `json:"writer"`
	Description *string          `json:"description"`
}

// RecipeChangedResponse línea de receta y recálculo de costo directo disparado.
type RecipeChangedResponse struct {
	Recipe RecipeLineResponse `json:"recipe"`
	RecalcResponse
}
