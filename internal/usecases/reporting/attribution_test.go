package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/echopie/alarmone-insights-api/internal/domain"
)

func TestClassifyPurchases(t *testing.T) {
	purchase := func(visitID string) domain.Event {
		return domain.Event{EventName: domain.EventPurchaseSuccess, VisitID: visitID}
	}
	click := func(name, visitID string) domain.Event {
		return domain.Event{EventName: name, VisitID: visitID}
	}

	t.Run("compras são atribuídas pelo visitId do clique", func(t *testing.T) {
		counts := ClassifyPurchases(
			[]domain.Event{purchase("v1"), purchase("v2"), purchase("v3"), purchase("v4")},
			[]domain.Event{click(domain.EventPurchaseAnnual, "v1")},
			[]domain.Event{click(domain.EventPurchaseLife, "v2")},
			[]domain.Event{click(domain.EventPurchaseMonthly, "v3")},
		)

		assert.Equal(t, 4, counts.Total)
		assert.Equal(t, 1, counts.Annual)
		assert.Equal(t, 1, counts.Lifetime)
		assert.Equal(t, 1, counts.Monthly)
		assert.Equal(t, 1, counts.Unknown)
	})

	t.Run("anual tem precedência sobre vitalício e mensal", func(t *testing.T) {
		counts := ClassifyPurchases(
			[]domain.Event{purchase("v1")},
			[]domain.Event{click(domain.EventPurchaseAnnual, "v1")},
			[]domain.Event{click(domain.EventPurchaseLife, "v1")},
			[]domain.Event{click(domain.EventPurchaseMonthly, "v1")},
		)

		assert.Equal(t, 1, counts.Annual)
		assert.Equal(t, 0, counts.Lifetime)
		assert.Equal(t, 0, counts.Monthly)
	})

	t.Run("vitalício tem precedência sobre mensal", func(t *testing.T) {
		counts := ClassifyPurchases(
			[]domain.Event{purchase("v1")},
			nil,
			[]domain.Event{click(domain.EventPurchaseLife, "v1")},
			[]domain.Event{click(domain.EventPurchaseMonthly, "v1")},
		)

		assert.Equal(t, 1, counts.Lifetime)
		assert.Equal(t, 0, counts.Monthly)
	})

	t.Run("sem compras retorna contagens zeradas", func(t *testing.T) {
		counts := ClassifyPurchases(nil, nil, nil, nil)

		assert.Equal(t, domain.PurchaseCounts{}, counts)
	})

	t.Run("a soma das categorias sempre bate com o total", func(t *testing.T) {
		purchases := []domain.Event{
			purchase("a"), purchase("b"), purchase("c"),
			purchase("d"), purchase(""), purchase("a"),
		}

		counts := ClassifyPurchases(
			purchases,
			[]domain.Event{click(domain.EventPurchaseAnnual, "a")},
			[]domain.Event{click(domain.EventPurchaseLife, "b")},
			[]domain.Event{click(domain.EventPurchaseMonthly, "c"), click(domain.EventPurchaseMonthly, "d")},
		)

		assert.Equal(t, len(purchases), counts.Total)
		assert.Equal(t, counts.Total, counts.Annual+counts.Lifetime+counts.Monthly+counts.Unknown)
	})
}
