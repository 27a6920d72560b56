package reporting

import (
	"time"

	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/echopie/alarmone-insights-api/pkg/utils"
)

// DailyBuckets agrupa eventos por dia local dentro da janela, garantindo que
// todos os dias do intervalo apareçam na série mesmo sem nenhum evento
func DailyBuckets(events []domain.Event, window domain.TimeWindow, loc *time.Location) []domain.DailyBucket {
	startDay := truncateToDay(window.StartTime(loc))
	endDay := truncateToDay(window.EndTime(loc))

	counts := make(map[string]int)
	order := make([]string, 0)

	// Semeia todos os dias do intervalo com zero
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		counts[key] = 0
		order = append(order, key)
	}

	for _, event := range events {
		key := utils.DayKey(event.CreatedAt, loc)
		if _, ok := counts[key]; !ok {
			// Evento fora do intervalo semeado é descartado
			continue
		}
		counts[key]++
	}

	buckets := make([]domain.DailyBucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, domain.DailyBucket{Date: key, Count: counts[key]})
	}

	return buckets
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
