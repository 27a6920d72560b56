package reporting

import (
	"github.com/echopie/alarmone-insights-api/internal/domain"
)

// ClassifyPurchases atribui cada compra concluída a um plano comparando o
// visitId da compra com os visitIds dos cliques de cada plano. A precedência
// é anual > vitalício > mensal; compras sem clique correspondente ficam
// como desconhecidas.
func ClassifyPurchases(purchases, annualClicks, lifetimeClicks, monthlyClicks []domain.Event) domain.PurchaseCounts {
	annualVisits := domain.NewVisitSet(annualClicks)
	lifetimeVisits := domain.NewVisitSet(lifetimeClicks)
	monthlyVisits := domain.NewVisitSet(monthlyClicks)

	counts := domain.PurchaseCounts{Total: len(purchases)}

	for _, purchase := range purchases {
		switch {
		case annualVisits.Contains(purchase.VisitID):
			counts.Annual++
		case lifetimeVisits.Contains(purchase.VisitID):
			counts.Lifetime++
		case monthlyVisits.Contains(purchase.VisitID):
			counts.Monthly++
		default:
			counts.Unknown++
		}
	}

	return counts
}
