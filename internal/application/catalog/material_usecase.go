package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-produccion/internal/application/dto"
	"github.com/jhoicas/erp-produccion/internal/application/ledger"
	"github.com/jhoicas/erp-produccion/internal/domain"
	"github.com/jhoicas/erp-produccion/internal/domain/entity"
	"github.com/jhoicas/erp-produccion/internal/domain/inventory"
	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

// MaterialUseCase datos maestros de materiales. Compras y consumos se delegan al Ledger.
type MaterialUseCase struct {
	txRunner  ledger.TxRunner
	ledger    *ledger.Ledger
	materials repository.MaterialRepository
	products  repository.ProductRepository
	movements repository.MaterialMovementRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	txRunner ledger.TxRunner,
	l *ledger.Ledger,
	materials repository.MaterialRepository,
	products repository.ProductRepository,
	movements repository.MaterialMovementRepository,
) *MaterialUseCase {
	return &MaterialUseCase{txRunner: txRunner, ledger: l, materials: materials, products: products, movements: movements}
}

// Create da de alta un material. El stock inicial queda registrado como movimiento de entrada.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	m := &entity.Material{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Stock:     in.Stock,
		Unit:      in.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		existing, err := repos.Materials.GetByNameForUpdate(ctx, m.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := repos.Materials.Create(ctx, m); err != nil {
			return err
		}
		if err := ledger.AttachToProducts(ctx, repos.Products, m, m.Name, now); err != nil {
			return err
		}
		if !m.Stock.IsPositive() {
			return nil
		}
		return repos.Movements.Create(ctx, &entity.MaterialMovement{
			TransactionID: uuid.New().String(),
			MaterialID:    m.ID,
			MaterialName:  m.Name,
			Type:          entity.MovementTypeIN,
			Quantity:      m.Stock,
			StockAfter:    m.Stock,
			Date:          now,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// GetByID obtiene un material o domain.ErrMaterialNotFound.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMaterialNotFound
	}
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// List devuelve todos los materiales por nombre. Con productID devuelve solo los que usa su BOM.
func (uc *MaterialUseCase) List(ctx context.Context, productID string) ([]dto.MaterialResponse, error) {
	list, err := uc.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	if productID != "" {
		product, err := uc.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		filtered := list[:0]
		for _, m := range list {
			if inventory.References(product.BOM, m) {
				filtered = append(filtered, m)
			}
		}
		list = filtered
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMaterialResponse(m))
	}
	return out, nil
}

// Update cambia nombre y unidad. Las líneas de BOM que lo referencian (por ID o por el nombre
// anterior) quedan enlazadas por ID con el nombre nuevo.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	var out dto.MaterialResponse
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		cur, err := repos.Materials.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrMaterialNotFound
		}
		next := *cur
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			next.Name = name
		}
		if in.Unit != nil {
			if *in.Unit == "" {
				return domain.ErrInvalidInput
			}
			next.Unit = *in.Unit
		}
		next.UpdatedAt = time.Now()

		// Productos antes que el material: mismo orden de bloqueo que Produce.
		if next.Name != cur.Name {
			if err := ledger.AttachToProducts(ctx, repos.Products, &next, cur.Name, next.UpdatedAt); err != nil {
				return err
			}
		}
		m, err := repos.Materials.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMaterialNotFound
		}
		if m.Name != cur.Name {
			return fmt.Errorf("%w: el material cambió de nombre durante la actualización", domain.ErrConflict)
		}
		m.Name, m.Unit, m.UpdatedAt = next.Name, next.Unit, next.UpdatedAt
		if err := repos.Materials.Update(ctx, m); err != nil {
			return err
		}
		out = dto.ToMaterialResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina un material. Devuelve domain.ErrConflict si alguna receta lo referencia.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		m, err := repos.Materials.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrMaterialNotFound
		}
		all, err := repos.Products.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, p := range all {
			if inventory.References(p.BOM, m) {
				return fmt.Errorf("%w: el material está referenciado por la receta de %s", domain.ErrConflict, p.Code)
			}
		}
		if err := repos.Materials.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrMaterialNotFound
			}
			return err
		}
		return nil
	})
}

// Purchase acredita una compra vía Ledger.
func (uc *MaterialUseCase) Purchase(ctx context.Context, in dto.PurchaseRequest) (*dto.MaterialResponse, error) {
	m, err := uc.ledger.Purchase(ctx, ledger.PurchaseInput{
		MaterialName: in.MaterialName,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		UnitCost:     in.UnitCost,
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToMaterialResponse(m)
	return &out, nil
}

// Consume registra un consumo manual (baja) todo-o-nada vía Ledger.DebitMany.
func (uc *MaterialUseCase) Consume(ctx context.Context, in dto.ConsumptionRequest) ([]dto.ConsumptionLineResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	reqs := make([]entity.Requirement, 0, len(in.Lines))
	for _, l := range in.Lines {
		reqs = append(reqs, entity.Requirement{
			MaterialID:   l.MaterialID,
			MaterialName: strings.TrimSpace(l.MaterialName),
			Quantity:     l.Quantity,
		})
	}
	lines, err := uc.ledger.DebitMany(ctx, reqs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumptionLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ConsumptionLineResponse{
			MaterialID:   l.Material.ID,
			MaterialName: l.Material.Name,
			Quantity:     l.Quantity,
			StockAfter:   l.Material.Stock,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MaterialName < out[j].MaterialName })
	return out, nil
}

// Movements lista el log de movimientos, opcionalmente de un solo material.
func (uc *MaterialUseCase) Movements(ctx context.Context, materialID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.movements.List(ctx, materialID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
