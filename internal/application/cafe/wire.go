package cafe

import (
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/application/pricing"
	"github.com/jhoicas/Cafeteria-api/internal/application/usecase"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

// Repositories puertos de persistencia que necesita el back-office completo.
// Lo implementan tanto el store en memoria como el de PostgreSQL.
type Repositories struct {
	TxRunner    inventory.TxRunner
	Items       repository.InventoryItemRepository
	Ledger      repository.StockChangeRepository
	Menus       repository.MenuRepository
	Recipes     repository.RecipeRepository
	Estimates   repository.PriceEstimateRepository
	Suppliers   repository.SupplierRepository
	CostSources repository.CostSourceRepository
	Forecasts   repository.SalesForecastRepository
}

// New arma motores, catálogo y fachada sobre los repositorios dados.
func New(r Repositories, locker inventory.Locker, log *logger.Logger) *Service {
	return NewService(Deps{
		Valuation: inventory.NewValuationUseCase(r.TxRunner, locker, r.Items, r.Ledger, r.Menus, r.Recipes, r.Suppliers, log),
		Costing:   pricing.NewCostingUseCase(r.Menus, r.Recipes, r.Items, r.Estimates, r.CostSources, r.Forecasts, log),
		Items:     usecase.NewInventoryItemUseCase(r.Items, r.Suppliers, r.Recipes),
		Menus:     usecase.NewMenuUseCase(r.Menus),
		Recipes:   usecase.NewRecipeUseCase(r.Recipes, r.Menus, r.Items),
		Suppliers: usecase.NewSupplierUseCase(r.Suppliers),
		Sources:   usecase.NewCostSourceUseCase(r.CostSources, r.Forecasts),
		Log:       log,
	})
}
