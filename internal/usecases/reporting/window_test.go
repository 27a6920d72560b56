package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindow(t *testing.T) {
	// Quarta-feira, 14 de janeiro de 2026, 15h30 local
	now := time.Date(2026, 1, 14, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name          string
		rangeToken    string
		startAt       *int64
		endAt         *int64
		expectedStart int64
		expectedEnd   int64
	}{
		{
			name:          "24h retorna as últimas 24 horas",
			rangeToken:    "24h",
			expectedStart: now.Add(-24 * time.Hour).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
		{
			name:          "today começa na meia-noite local",
			rangeToken:    "today",
			expectedStart: time.Date(2026, 1, 14, 0, 0, 0, 0, time.Local).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
		{
			name:       "week começa no domingo anterior",
			rangeToken: "week",
			// 14/01/2026 é quarta-feira, o domingo anterior é 11/01
			expectedStart: time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
		{
			name:          "month começa no primeiro dia do mês",
			rangeToken:    "month",
			expectedStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
		{
			name:          "número de dias é interpretado literalmente",
			rangeToken:    "30",
			expectedStart: now.AddDate(0, 0, -30).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
		{
			name:          "token não reconhecido cai no padrão de 7 dias",
			rangeToken:    "banana",
			expectedStart: now.AddDate(0, 0, -7).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
		{
			name:          "número negativo cai no padrão de 7 dias",
			rangeToken:    "-3",
			expectedStart: now.AddDate(0, 0, -7).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
		{
			name:          "startAt e endAt explícitos têm precedência sobre o token",
			rangeToken:    "month",
			startAt:       int64Ptr(1700000000000),
			endAt:         int64Ptr(1700600000000),
			expectedStart: 1700000000000,
			expectedEnd:   1700600000000,
		},
		{
			name:          "apenas startAt sem endAt usa o token",
			rangeToken:    "24h",
			startAt:       int64Ptr(1700000000000),
			expectedStart: now.Add(-24 * time.Hour).UnixMilli(),
			expectedEnd:   now.UnixMilli(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := ResolveWindow(tt.rangeToken, tt.startAt, tt.endAt, now)

			assert.Equal(t, tt.expectedStart, window.StartAt)
			assert.Equal(t, tt.expectedEnd, window.EndAt)
		})
	}
}

func TestRangeLabel(t *testing.T) {
	tests := []struct {
		name       string
		rangeToken string
		days       int
		expected   string
	}{
		{name: "últimas 24 horas", rangeToken: "24h", days: 1, expected: "Últimas 24 horas"},
		{name: "hoje", rangeToken: "today", days: 1, expected: "Hoje"},
		{name: "esta semana", rangeToken: "week", days: 4, expected: "Esta semana"},
		{name: "este mês", rangeToken: "month", days: 14, expected: "Este mês"},
		{name: "janela personalizada", rangeToken: "custom", days: 5, expected: "Período personalizado"},
		{name: "dias explícitos", rangeToken: "30", days: 30, expected: "Últimos 30 dias"},
		{name: "token inválido usa os dias resolvidos", rangeToken: "banana", days: 7, expected: "Últimos 7 dias"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RangeLabel(tt.rangeToken, tt.days))
		})
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
