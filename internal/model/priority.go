package model

// Weights of the business priority score.
const (
	SeverityWeight = 0.4
	ImpactWeight   = 0.6
)

// BusinessPriorityOf combines quality severity and merchant impact into the
// business priority score (both inputs and the result are on a 0-100 scale).
func BusinessPriorityOf(severity, impact float64) float64 {
	return SeverityWeight*severity + ImpactWeight*impact
}
