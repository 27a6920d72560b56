package reporting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/echopie/alarmone-insights-api/internal/domain"
)

const defaultRangeDays = 7

// ResolveWindow converte o token de período (24h, today, week, month ou um
// número de dias) na janela de tempo efetiva em epoch millis. Quando startAt
// e endAt são informados explicitamente, eles têm precedência sobre o token.
func ResolveWindow(rangeToken string, startAt, endAt *int64, now time.Time) domain.TimeWindow {
	if startAt != nil && endAt != nil {
		return domain.TimeWindow{StartAt: *startAt, EndAt: *endAt}
	}

	endMillis := now.UnixMilli()

	switch rangeToken {
	case "24h":
		return domain.TimeWindow{
			StartAt: now.Add(-24 * time.Hour).UnixMilli(),
			EndAt:   endMillis,
		}
	case "today":
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return domain.TimeWindow{StartAt: midnight.UnixMilli(), EndAt: endMillis}
	case "week":
		// Semana começa no domingo
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		weekStart := midnight.AddDate(0, 0, -int(now.Weekday()))
		return domain.TimeWindow{StartAt: weekStart.UnixMilli(), EndAt: endMillis}
	case "month":
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return domain.TimeWindow{StartAt: monthStart.UnixMilli(), EndAt: endMillis}
	}

	days := defaultRangeDays
	if n, err := strconv.Atoi(rangeToken); err == nil && n > 0 {
		days = n
	}

	return domain.TimeWindow{
		StartAt: now.AddDate(0, 0, -days).UnixMilli(),
		EndAt:   endMillis,
	}
}

// RangeLabel retorna o rótulo de exibição do período selecionado
func RangeLabel(rangeToken string, days int) string {
	switch rangeToken {
	case "24h":
		return "Últimas 24 horas"
	case "today":
		return "Hoje"
	case "week":
		return "Esta semana"
	case "month":
		return "Este mês"
	case "custom":
		return "Período personalizado"
	}

	if n, err := strconv.Atoi(rangeToken); err == nil && n > 0 {
		return fmt.Sprintf("Últimos %d dias", n)
	}

	return fmt.Sprintf("Últimos %d dias", days)
}
