package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		previous int
		expected int
	}{
		{name: "sem atividade nos dois períodos", current: 0, previous: 0, expected: 0},
		{name: "crescimento sem base anterior conta como 100%", current: 5, previous: 0, expected: 100},
		{name: "crescimento de 50%", current: 15, previous: 10, expected: 50},
		{name: "queda de 50%", current: 5, previous: 10, expected: -50},
		{name: "queda total", current: 0, previous: 10, expected: -100},
		{name: "arredondamento para o inteiro mais próximo", current: 1, previous: 3, expected: -67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentChange(tt.current, tt.previous))
		})
	}
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name        string
		numerator   int
		denominator int
		expected    string
	}{
		{name: "denominador zero retorna 0.00", numerator: 5, denominator: 0, expected: "0.00"},
		{name: "taxa com duas casas", numerator: 1, denominator: 3, expected: "33.33"},
		{name: "taxa inteira mantém as casas", numerator: 1, denominator: 2, expected: "50.00"},
		{name: "numerador zero", numerator: 0, denominator: 10, expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConversionRate(tt.numerator, tt.denominator))
		})
	}
}
