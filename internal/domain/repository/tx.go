package repository

// TxRepositories agrupa los repositorios atados a una misma transacción.
type TxRepositories struct {
	Materials   MaterialRepository
	Products    ProductRepository
	Productions ProductionRepository
	Movements   MaterialMovementRepository
}
