package ledger

import (
	"context"

	"github.com/jhoicas/erp-produccion/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// La validación y el commit del débito ocurren dentro de una misma llamada a Run: esa es la
// sección crítica que impide que dos débitos concurrentes sobregiren un material.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error
}
