package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cafeteria-api/internal/application/dto"
	"github.com/jhoicas/Cafeteria-api/internal/domain"
	"github.com/jhoicas/Cafeteria-api/internal/domain/entity"
	"github.com/jhoicas/Cafeteria-api/internal/domain/repository"
)

// CostSourceUseCase altas de fuentes de costo indirecto y pronósticos de ventas.
// Solo valida y persiste; el orquestador dispara los recálculos.
type CostSourceUseCase struct {
	repo         repository.CostSourceRepository
	forecastRepo repository.SalesForecastRepository
}

// NewCostSourceUseCase construye el caso de uso.
func NewCostSourceUseCase(repo repository.CostSourceRepository, forecastRepo repository.SalesForecastRepository) *CostSourceUseCase {
	return &CostSourceUseCase{repo: repo, forecastRepo: forecastRepo}
}

// CreateRent arriendo con porcentaje de hipoteca en [0,1].
func (uc *CostSourceUseCase) CreateRent(ctx context.Context, in dto.CreateRentRequest) (*entity.Rent, error) {
	if !ValidRange(in.FromDate, in.ToDate) || anyNegative(in.Rent, in.Mortgage) || !isFraction(in.MortgagePercentageToRent) {
		return nil, domain.ErrInvalidInput
	}
	rent := &entity.Rent{
		ID:                       uuid.New().String(),
		Name:                     in.Name,
		Rent:                     in.Rent,
		Mortgage:                 in.Mortgage,
		MortgagePercentageToRent: in.MortgagePercentageToRent,
		FromDate:                 in.FromDate,
		ToDate:                   in.ToDate,
		Description:              in.Description,
	}
	if err := uc.repo.CreateRent(ctx, rent); err != nil {
		return nil, err
	}
	return rent, nil
}

// CreateBills servicios estimados.
func (uc *CostSourceUseCase) CreateBills(ctx context.Context, in dto.CreateBillsRequest) (*entity.EstimatedBills, error) {
	if !ValidRange(in.FromDate, in.ToDate) || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	bills := &entity.EstimatedBills{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		Cost:        in.Cost,
		FromDate:    in.FromDate,
		ToDate:      in.ToDate,
		Description: in.Description,
	}
	if err := uc.repo.CreateBills(ctx, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// CreateEquipment equipo depreciable.
func (uc *CostSourceUseCase) CreateEquipment(ctx context.Context, in dto.CreateEquipmentRequest) (*entity.Equipment, error) {
	if !ValidRange(in.PurchaseDate, in.ExpirationDate) || anyNegative(in.PurchasePrice, in.MonthlyDepreciation) {
		return nil, domain.ErrInvalidInput
	}
	eq := &entity.Equipment{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		Category:            in.Category,
		PurchasePrice:       in.PurchasePrice,
		MonthlyDepreciation: in.MonthlyDepreciation,
		PurchaseDate:        in.PurchaseDate,
		ExpirationDate:      in.ExpirationDate,
		Description:         in.Description,
	}
	if err := uc.repo.CreateEquipment(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// CreatePosition cargo con salario objetivo.
func (uc *CostSourceUseCase) CreatePosition(ctx context.Context, in dto.CreatePositionRequest) (*entity.TargetPositionAndSalary, error) {
	if anyNegative(in.MonthlyHours, in.MonthlyPayment, in.MonthlyInsurance) {
		return nil, domain.ErrInvalidInput
	}
	if in.ExtraHourPayment != nil && in.ExtraHourPayment.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	pos := &entity.TargetPositionAndSalary{
		ID:               uuid.New().String(),
		Name:             in.Name,
		MonthlyHours:     in.MonthlyHours,
		MonthlyPayment:   in.MonthlyPayment,
		MonthlyInsurance: in.MonthlyInsurance,
		ExtraHourPayment: in.ExtraHourPayment,
	}
	if err := uc.repo.CreatePosition(ctx, pos); err != nil {
		return nil, err
	}
	return pos, nil
}

// CreateShift turno con asignaciones. Las horas extra no pueden superar la duración del turno.
func (uc *CostSourceUseCase) CreateShift(ctx context.Context, in dto.CreateShiftRequest) (*entity.Shift, error) {
	if !ValidRange(in.FromDate, in.ToDate) || in.ExtraPayment.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	shift := &entity.Shift{
		ID:           uuid.New().String(),
		Name:         in.Name,
		FromDate:     in.FromDate,
		ToDate:       in.ToDate,
		ExtraPayment: in.ExtraPayment,
		Description:  in.Description,
	}
	duration := shift.Duration()
	for _, l := range in.Labor {
		if l.NumberOfStaff < 0 || l.ExtraHours.IsNegative() || l.ExtraHours.GreaterThan(duration) {
			return nil, domain.ErrInvalidInput
		}
		pos, err := uc.repo.GetPosition(ctx, l.PositionID)
		if err != nil {
			return nil, err
		}
		if pos == nil {
			return nil, domain.ErrNotFound
		}
		shift.Labor = append(shift.Labor, entity.EstimatedLabor{
			ID:            uuid.New().String(),
			ShiftID:       shift.ID,
			PositionID:    l.PositionID,
			NumberOfStaff: l.NumberOfStaff,
			ExtraHours:    l.ExtraHours,
		})
	}
	if err := uc.repo.CreateShift(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// DeleteSalesForecast borra un pronóstico.
func (uc *CostSourceUseCase) DeleteSalesForecast(ctx context.Context, id string) error {
	return uc.forecastRepo.Delete(ctx, id)
}

// CreateSalesForecast pronóstico de unidades vendidas.
func (uc *CostSourceUseCase) CreateSalesForecast(ctx context.Context, in dto.CreateSalesForecastRequest) (*entity.SalesForecast, error) {
	if !ValidRange(in.FromDate, in.ToDate) || in.SalesForecast < 0 {
		return nil, domain.ErrInvalidInput
	}
	f := &entity.SalesForecast{
		ID:            uuid.New().String(),
		FromDate:      in.FromDate,
		ToDate:        in.ToDate,
		SalesForecast: in.SalesForecast,
		Description:   in.Description,
	}
	if err := uc.forecastRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ValidRange ventana con inicio definido y anterior al fin.
func ValidRange(from, to time.Time) bool {
	return !from.IsZero() && from.Before(to)
}
