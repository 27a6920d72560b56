package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/echopie/alarmone-insights-api/internal/domain"
)

func TestDailyBuckets(t *testing.T) {
	loc := time.Local

	dayStart := time.Date(2026, 1, 10, 0, 0, 0, 0, loc)
	window := domain.TimeWindow{
		StartAt: dayStart.UnixMilli(),
		EndAt:   dayStart.AddDate(0, 0, 6).Add(23 * time.Hour).UnixMilli(),
	}

	eventAt := func(t time.Time) domain.Event {
		return domain.Event{EventName: domain.EventAppLaunch, CreatedAt: t.UnixMilli()}
	}

	t.Run("todos os dias da janela aparecem mesmo sem eventos", func(t *testing.T) {
		buckets := DailyBuckets(nil, window, loc)

		assert.Len(t, buckets, 7)
		for i, bucket := range buckets {
			assert.Equal(t, dayStart.AddDate(0, 0, i).Format("2006-01-02"), bucket.Date)
			assert.Equal(t, 0, bucket.Count)
		}
	})

	t.Run("eventos são contados no dia local correto", func(t *testing.T) {
		events := []domain.Event{
			eventAt(dayStart.Add(2 * time.Hour)),
			eventAt(dayStart.Add(5 * time.Hour)),
			eventAt(dayStart.AddDate(0, 0, 3).Add(12 * time.Hour)),
		}

		buckets := DailyBuckets(events, window, loc)

		assert.Equal(t, 2, buckets[0].Count)
		assert.Equal(t, 1, buckets[3].Count)

		total := 0
		for _, bucket := range buckets {
			total += bucket.Count
		}
		assert.Equal(t, len(events), total)
	})

	t.Run("evento fora da janela é descartado", func(t *testing.T) {
		events := []domain.Event{
			eventAt(dayStart.AddDate(0, 0, -1)),
			eventAt(dayStart.AddDate(0, 0, 10)),
			eventAt(dayStart.Add(time.Hour)),
		}

		buckets := DailyBuckets(events, window, loc)

		total := 0
		for _, bucket := range buckets {
			total += bucket.Count
		}
		assert.Equal(t, 1, total)
	})

	t.Run("janela de um único dia gera um único balde", func(t *testing.T) {
		sameDay := domain.TimeWindow{
			StartAt: dayStart.UnixMilli(),
			EndAt:   dayStart.Add(10 * time.Hour).UnixMilli(),
		}

		buckets := DailyBuckets([]domain.Event{eventAt(dayStart.Add(time.Hour))}, sameDay, loc)

		assert.Len(t, buckets, 1)
		assert.Equal(t, 1, buckets[0].Count)
	})
}
