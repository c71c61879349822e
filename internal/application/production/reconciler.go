// Package production orquesta las corridas de producción y la proyección de unidades fabricables.
package production

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
	"github.com/jhoicas/erp-produccion/pkg/logger"
)

// Reconciler convierte materiales en producto terminado.
type Reconciler struct {
	txRunner    ledger.TxRunner
	ledger      *ledger.Ledger
	productions repository.ProductionRepository
	log         *logger.Logger
	rec         Recorder
	now         func() time.Time
}

// NewReconciler construye el caso de uso. log y rec pueden ser nil.
func NewReconciler(
	txRunner ledger.TxRunner,
	l *ledger.Ledger,
	productions repository.ProductionRepository,
	log *logger.Logger,
	rec Recorder,
) *Reconciler {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Reconciler{
		txRunner:    txRunner,
		ledger:      l,
		productions: productions,
		log:         log.Named("production"),
		rec:         rec,
		now:         time.Now,
	}
}

// Produce fabrica quantity unidades de productID.
// Debita los materiales del BOM escalado, acredita el producto terminado y registra el evento,
// todo en una sola transacción: si algo falla no queda ningún cambio aplicado.
// Si falta material devuelve *domain.ShortageError con todos los faltantes.
func (r *Reconciler) Produce(ctx context.Context, productID string, quantity decimal.Decimal) (*entity.ProductionEvent, error) {
	var event *entity.ProductionEvent
	var productCode string
	err := r.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if !quantity.IsPositive() {
			return domain.ErrInvalidQuantity
		}
		productCode = product.Code
		if !product.HasRecipe() {
			return domain.ErrNoRecipe
		}

		now := r.now()
		eventID := uuid.New().String()
		reqs := inventory.ScaleBOM(product.BOM, quantity)
		lines, err := r.ledger.DebitManyInTx(ctx, repos, reqs, entity.MovementTypePRODUCTION, eventID, now)
		if err != nil {
			return err
		}

		if _, err := repos.Products.IncreaseStock(ctx, product.ID, quantity); err != nil {
			return err
		}

		consumed := make([]entity.ConsumedMaterial, 0, len(lines))
		cost := decimal.Zero
		for _, line := range lines {
			consumed = append(consumed, entity.ConsumedMaterial{
				MaterialID:   line.Material.ID,
				MaterialName: line.Material.Name,
				Quantity:     line.Quantity,
				Unit:         line.Material.Unit,
				UnitCost:     line.Material.AvgCost,
			})
			cost = cost.Add(line.Quantity.Mul(line.Material.AvgCost))
		}
		ev := &entity.ProductionEvent{
			ID:                eventID,
			Date:              now,
			ProductID:         product.ID,
			ProductName:       product.Name,
			Quantity:          quantity,
			MaterialsConsumed: consumed,
			MaterialCost:      cost,
			Status:            entity.ProductionStatusCompleted,
		}
		if err := repos.Productions.Create(ctx, ev); err != nil {
			return err
		}
		event = ev
		return nil
	})
	if err != nil {
		r.reportFailure(productID, productCode, quantity, err)
		return nil, err
	}

	r.rec.ProductionRun(resultCompleted, productCode, quantity)
	r.rec.MaterialDebited(len(event.MaterialsConsumed))
	r.log.Info().
		Str("event_id", event.ID).
		Str("product_id", event.ProductID).
		Str("product", event.ProductName).
		Str("quantity", quantity.String()).
		Str("material_cost", event.MaterialCost.String()).
		Msg("producción registrada")
	return event, nil
}

func (r *Reconciler) reportFailure(productID, productCode string, quantity decimal.Decimal, err error) {
	if shortages, ok := domain.AsShortage(err); ok {
		r.rec.ProductionRun(resultShortage, productCode, quantity)
		for _, s := range shortages {
			r.rec.Shortage(s.MaterialName)
			r.log.Warn().
				Str("product_id", productID).
				Str("material", s.MaterialName).
				Str("required", s.Required.String()).
				Str("available", s.Available.String()).
				Bool("missing", s.Missing).
				Msg("material insuficiente para producir")
		}
		return
	}
	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrNoRecipe) {
		r.log.Debug().Err(err).Str("product_id", productID).Msg("producción rechazada")
		return
	}
	r.rec.ProductionRun(resultError, productCode, quantity)
	r.log.Error().Err(err).Str("product_id", productID).Msg("error registrando producción")
}

// History devuelve el historial del más reciente al más antiguo.
func (r *Reconciler) History(ctx context.Context, limit, offset int) ([]*entity.ProductionEvent, error) {
	return r.productions.List(ctx, limit, offset)
}

// Get devuelve un evento de producción o domain.ErrNotFound.
func (r *Reconciler) Get(ctx context.Context, id string) (*entity.ProductionEvent, error) {
	ev, err := r.productions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}
