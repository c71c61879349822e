// Package ledger implementa el libro de stock de materiales: la única vía autorizada
// para acreditar y debitar cantidades de materia prima.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

// Ledger libro de stock de materiales.
type Ledger struct {
	txRunner  TxRunner
	materials repository.MaterialRepository
	now       func() time.Time
}

// NewLedger construye el libro. materials se usa para lecturas fuera de transacción.
func NewLedger(txRunner TxRunner, materials repository.MaterialRepository) *Ledger {
	return &Ledger{txRunner: txRunner, materials: materials, now: time.Now}
}

// PurchaseInput entrada de una compra (acreditación) de material.
// UnitCost es opcional; si viene, actualiza el costo promedio ponderado.
type PurchaseInput struct {
	MaterialName string
	Quantity     decimal.Decimal
	Unit         string
	UnitCost     *decimal.Decimal
}

// DebitedLine resultado de una línea debitada: el material con su stock posterior y la cantidad.
type DebitedLine struct {
	Material entity.Material
	Quantity decimal.Decimal
}

// Credit acredita quantity al material materialName. Si el material no existe lo crea con
// la unidad indicada y quantity como stock inicial (compra de un material no registrado).
func (l *Ledger) Credit(ctx context.Context, materialName string, quantity decimal.Decimal, unit string) (*entity.Material, error) {
	return l.Purchase(ctx, PurchaseInput{MaterialName: materialName, Quantity: quantity, Unit: unit})
}

// Purchase acredita una compra de material dentro de una transacción.
func (l *Ledger) Purchase(ctx context.Context, in PurchaseInput) (*entity.Material, error) {
	in.MaterialName = strings.TrimSpace(in.MaterialName)
	if in.MaterialName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.Material
	err := l.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		m, err := l.creditInTx(ctx, repos, in, uuid.New().String(), l.now())
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) creditInTx(
	ctx context.Context,
	repos repository.TxRepositories,
	in PurchaseInput,
	txID string,
	now time.Time,
) (*entity.Material, error) {
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}

	// Bloquea la fila del material (SELECT FOR UPDATE) para evitar condiciones de carrera
	m, err := repos.Materials.GetByNameForUpdate(ctx, in.MaterialName)
	if err != nil {
		return nil, err
	}
	if m == nil {
		unit := in.Unit
		if unit == "" {
			unit = entity.UnitPcs
		}
		m = &entity.Material{
			ID:        uuid.New().String(),
			Name:      in.MaterialName,
			Stock:     in.Quantity,
			Unit:      unit,
			AvgCost:   unitCost,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.Materials.Create(ctx, m); err != nil {
			return nil, err
		}
		if err := AttachToProducts(ctx, repos.Products, m, m.Name, now); err != nil {
			return nil, err
		}
	} else {
		avgCost := m.AvgCost
		if in.UnitCost != nil {
			avgCost = inventory.CostCalculator(m.Stock, m.AvgCost, in.Quantity, unitCost)
		}
		newStock, err := repos.Materials.IncreaseStock(ctx, m.ID, in.Quantity, avgCost)
		if err != nil {
			return nil, err
		}
		m.Stock = newStock
		m.AvgCost = avgCost
		m.UpdatedAt = now
	}

	mov := &entity.MaterialMovement{
		TransactionID: txID,
		MaterialID:    m.ID,
		MaterialName:  m.Name,
		Type:          entity.MovementTypeIN,
		Quantity:      in.Quantity,
		UnitCost:      unitCost,
		StockAfter:    m.Stock,
		Date:          now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return m, nil
}

// DebitMany debita varios materiales de forma todo-o-nada. Si algún material no alcanza
// devuelve *domain.ShortageError con TODOS los faltantes y no modifica ningún stock.
func (l *Ledger) DebitMany(ctx context.Context, reqs []entity.Requirement) ([]DebitedLine, error) {
	var out []DebitedLine
	err := l.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		lines, err := l.DebitManyInTx(ctx, repos, reqs, entity.MovementTypeOUT, uuid.New().String(), l.now())
		if err != nil {
			return err
		}
		out = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DebitManyInTx ejecuta el débito en dos fases usando los repositorios de la transacción del caller.
//  1. Validación: bloquea los materiales en orden de ID, compara disponible vs requerido y
//     acumula faltantes.
//  2. Commit: solo si no hubo faltantes, descuenta cada material y registra el movimiento.
func (l *Ledger) DebitManyInTx(
	ctx context.Context,
	repos repository.TxRepositories,
	reqs []entity.Requirement,
	movementType, transactionID string,
	now time.Time,
) ([]DebitedLine, error) {
	if !inventory.ValidRequirements(reqs) {
		return nil, domain.ErrInvalidQuantity
	}
	reqs = inventory.MergeRequirements(reqs)

	locked, err := lockInIDOrder(ctx, repos.Materials, reqs)
	if err != nil {
		return nil, err
	}

	// Enlaza por ID lo resuelto y vuelve a agrupar: dos líneas (una por ID, otra por nombre)
	// pueden apuntar al mismo material.
	keyed := make([]entity.Requirement, len(reqs))
	byID := make(map[string]*entity.Material, len(reqs))
	for i, r := range reqs {
		if m := locked[i]; m != nil {
			r.MaterialID = m.ID
			r.MaterialName = m.Name
			byID[m.ID] = m
		}
		keyed[i] = r
	}
	keyed = inventory.MergeRequirements(keyed)
	resolved := make([]*entity.Material, len(keyed))
	for i, r := range keyed {
		resolved[i] = byID[r.MaterialID]
	}

	if shortages := inventory.FindShortages(keyed, resolved); len(shortages) > 0 {
		return nil, &domain.ShortageError{Shortages: shortages}
	}

	lines := make([]DebitedLine, 0, len(keyed))
	for i, r := range keyed {
		m := resolved[i]
		newStock, err := repos.Materials.DecreaseStock(ctx, m.ID, r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("debitar %s: %w", m.Name, err)
		}
		m.Stock = newStock
		m.UpdatedAt = now
		mov := &entity.MaterialMovement{
			TransactionID: transactionID,
			MaterialID:    m.ID,
			MaterialName:  m.Name,
			Type:          movementType,
			Quantity:      r.Quantity.Neg(),
			UnitCost:      m.AvgCost,
			StockAfter:    newStock,
			Date:          now,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return nil, err
		}
		lines = append(lines, DebitedLine{Material: *m, Quantity: r.Quantity})
	}
	return lines, nil
}

// lockInIDOrder resuelve cada requisito a un material sin bloquear (ID primero, luego nombre)
// y después bloquea las filas en orden de ID, sea cual sea la forma de la referencia.
// locked[i] es nil si el requisito i no corresponde a ningún material.
func lockInIDOrder(ctx context.Context, repo repository.MaterialRepository, reqs []entity.Requirement) ([]*entity.Material, error) {
	ids := make([]string, len(reqs))
	for i, r := range reqs {
		m, err := resolveMaterial(ctx, repo, r)
		if err != nil {
			return nil, err
		}
		if m != nil {
			ids[i] = m.ID
		}
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	byID := make(map[string]*entity.Material, len(unique))
	for _, id := range unique {
		m, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		// Borrado entre la resolución y el bloqueo: cuenta como faltante.
		if m != nil {
			byID[id] = m
		}
	}

	locked := make([]*entity.Material, len(reqs))
	for i, id := range ids {
		locked[i] = byID[id]
	}
	return locked, nil
}

func resolveMaterial(ctx context.Context, repo repository.MaterialRepository, r entity.Requirement) (*entity.Material, error) {
	if r.MaterialID != "" {
		m, err := repo.GetByID(ctx, r.MaterialID)
		if err != nil || m != nil {
			return m, err
		}
	}
	if r.MaterialName == "" {
		return nil, nil
	}
	return repo.GetByName(ctx, r.MaterialName)
}

// Get devuelve el material por nombre o domain.ErrMaterialNotFound.
func (l *Ledger) Get(ctx context.Context, materialName string) (*entity.Material, error) {
	m, err := l.materials.GetByName(ctx, materialName)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMaterialNotFound
	}
	return m, nil
}

// List devuelve todos los materiales ordenados por nombre.
func (l *Ledger) List(ctx context.Context) ([]*entity.Material, error) {
	list, err := l.materials.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
