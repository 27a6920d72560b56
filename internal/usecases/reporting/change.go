package reporting

import (
	"fmt"
	"math"
)

// PercentChange calcula a variação percentual entre o período atual e o
// anterior. Sem base de comparação, qualquer valor atual positivo conta
// como 100% de crescimento.
func PercentChange(current, previous int) int {
	if previous > 0 {
		return int(math.Round(float64(current-previous) / float64(previous) * 100))
	}

	if current > 0 {
		return 100
	}

	return 0
}

// ConversionRate formata a taxa de conversão com duas casas decimais
func ConversionRate(numerator, denominator int) string {
	if denominator <= 0 {
		return "0.00"
	}

	return fmt.Sprintf("%.2f", float64(numerator)/float64(denominator)*100)
}
