package production

import "github.com/shopspring/decimal"

// Recorder recibe las métricas de producción. *metrics.Metrics lo implementa.
type Recorder interface {
	ProductionRun(result, productCode string, qty decimal.Decimal)
	Shortage(material string)
	MaterialDebited(n int)
}

type nopRecorder struct{}

func (nopRecorder) ProductionRun(string, string, decimal.Decimal) {}
func (nopRecorder) Shortage(string)                               {}
func (nopRecorder) MaterialDebited(int)                           {}

// Resultados reportados al Recorder. Coinciden con los de metrics.
const (
	resultCompleted = "completed"
	resultShortage  = "shortage"
	resultError     = "error"
)
