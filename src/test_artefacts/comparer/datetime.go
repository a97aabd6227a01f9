package comparer

import (
	"math"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TimeWithinTolerance iguala timestamps que o banco arredonda para microssegundos.
func TimeWithinTolerance(toleranceMs int) cmp.Option {
	tolerance := time.Duration(toleranceMs) * time.Millisecond

	return cmp.Comparer(func(x, y time.Time) bool {
		return x.Sub(y).Abs() <= tolerance
	})
}

// MoneyWithinCents compara preços e totais ignorando erro de ponto flutuante.
func MoneyWithinCents() cmp.Option {
	return cmp.Comparer(func(x, y float64) bool {
		return math.Abs(x-y) < 0.005
	})
}
