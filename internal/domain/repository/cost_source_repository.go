package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
)

// CostSourceRepository define el puerto de las fuentes de costo indirecto.
// Las ventanas [from, to) son semiabiertas.
type CostSourceRepository interface {
	CreateRent(ctx context.Context, rent *entity.Rent) error
	// ListRent registros con FromDate dentro de la ventana.
	ListRent(ctx context.Context, from, to time.Time) ([]*entity.Rent, error)

	CreateBills(ctx context.Context, bills *entity.EstimatedBills) error
	ListBills(ctx context.Context, from, to time.Time) ([]*entity.EstimatedBills, error)

	CreateEquipment(ctx context.Context, equipment *entity.Equipment) error
	// ListEquipment equipos comprados antes de to y que expiran después de from.
	ListEquipment(ctx context.Context, from, to time.Time) ([]*entity.Equipment, error)

	CreatePosition(ctx context.Context, position *entity.TargetPositionAndSalary) error
	GetPosition(ctx context.Context, id string) (*entity.TargetPositionAndSalary, error)

	// CreateShift persiste el turno junto con sus asignaciones de personal.
	CreateShift(ctx context.Context, shift *entity.Shift) error
	GetShift(ctx context.Context, id string) (*entity.Shift, error)
	// ListShifts turnos con FromDate dentro de la ventana, con sus asignaciones cargadas.
	ListShifts(ctx context.Context, from, to time.Time) ([]*entity.Shift, error)
}

// SalesForecastRepository define el puerto de los pronósticos de ventas.
type SalesForecastRepository interface {
	Create(ctx context.Context, forecast *entity.SalesForecast) error
	// ListInWindow pronósticos con FromDate dentro de la ventana.
	ListInWindow(ctx context.Context, from, to time.Time) ([]*entity.SalesForecast, error)
	Delete(ctx context.Context, id string) error
}
