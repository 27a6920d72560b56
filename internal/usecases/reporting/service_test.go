package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/echopie/alarmone-insights-api/internal/usecases/reporting/mocks"
)

func TestReportingService_BuildDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)

	source := mocks.NewMockAnalyticsSource(ctrl)
	service := &ReportingService{
		source: source,
		loc:    time.Local,
		now:    func() time.Time { return now },
	}

	window := ResolveWindow("7", nil, nil, now)
	previous := window.Previous()

	eventIn := func(name string, visitID string) domain.Event {
		return domain.Event{
			EventName: name,
			CreatedAt: window.StartAt + 1000,
			VisitID:   visitID,
		}
	}

	// Eventos da janela atual, indexados pelo nome
	currentEvents := map[string][]domain.Event{
		domain.EventAppLaunch: {
			eventIn(domain.EventAppLaunch, "v1"),
			eventIn(domain.EventAppLaunch, "v2"),
		},
		domain.EventNewUser: {
			eventIn(domain.EventNewUser, "v1"),
			eventIn(domain.EventNewUser, "v2"),
			eventIn(domain.EventNewUser, "v3"),
		},
		domain.EventPurchaseSuccess: {
			eventIn(domain.EventPurchaseSuccess, "v1"),
			eventIn(domain.EventPurchaseSuccess, "v2"),
			eventIn(domain.EventPurchaseSuccess, "v9"),
		},
		domain.EventPurchaseAnnual:  {eventIn(domain.EventPurchaseAnnual, "v1")},
		domain.EventPurchaseLife:    {eventIn(domain.EventPurchaseLife, "v2")},
		domain.EventPurchaseMonthly: {eventIn(domain.EventPurchaseMonthly, "v5")},
		domain.EventAlarmAdd:        {eventIn(domain.EventAlarmAdd, "v1")},
		domain.EventOnboardAppear: {
			eventIn(domain.EventOnboardAppear, "v1"),
			eventIn(domain.EventOnboardAppear, "v2"),
		},
		domain.EventOnboardComplete: {eventIn(domain.EventOnboardComplete, "v1")},
	}

	// Eventos da janela de comparação
	previousEvents := map[string][]domain.Event{
		domain.EventNewUser: {
			{EventName: domain.EventNewUser, CreatedAt: previous.StartAt + 1000},
			{EventName: domain.EventNewUser, CreatedAt: previous.StartAt + 2000},
		},
	}

	source.EXPECT().
		FetchEvents(gomock.Any(), window, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.TimeWindow, name string) ([]domain.Event, error) {
			return currentEvents[name], nil
		}).
		Times(17)

	source.EXPECT().
		FetchEvents(gomock.Any(), previous, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.TimeWindow, name string) ([]domain.Event, error) {
			return previousEvents[name], nil
		}).
		Times(1)

	source.EXPECT().
		FetchStats(gomock.Any(), window).
		Return(&domain.SiteStats{
			Visitors:  10,
			Visits:    20,
			Pageviews: 50,
			Bounces:   5,
			TotalTime: 400,
		}, nil)

	source.EXPECT().
		FetchStats(gomock.Any(), previous).
		Return(&domain.SiteStats{Visitors: 20}, nil)

	report, err := service.BuildDashboard(context.Background(), "7", nil, nil)

	require.NoError(t, err)
	require.NotNil(t, report)

	// Cartões de resumo
	assert.Equal(t, 2, report.Summary.AppLaunches)
	assert.Equal(t, 3, report.Summary.NewUsers)
	assert.Equal(t, 50, report.Summary.NewUsersChange) // 3 contra 2 no período anterior
	assert.Equal(t, 10, report.Summary.Visitors)
	// Sem eventos diários de atividade, os visitantes do Umami servem de aproximação
	assert.Equal(t, 10, report.Summary.ActiveUsers)
	// 10 visitantes contra 20 no período anterior
	assert.Equal(t, -50, report.Summary.VisitorChange)

	// Atribuição de compras: v1 anual, v2 vitalício, v9 sem clique
	assert.Equal(t, 3, report.Summary.Purchases.Total)
	assert.Equal(t, 1, report.Summary.Purchases.Annual)
	assert.Equal(t, 1, report.Summary.Purchases.Lifetime)
	assert.Equal(t, 0, report.Summary.Purchases.Monthly)
	assert.Equal(t, 1, report.Summary.Purchases.Unknown)
	assert.Equal(t, 2, report.Summary.VipUsers)

	// Funil de compra: 3 cliques, 3 sucessos
	assert.Equal(t, 3, report.Summary.PurchaseFunnel.Clicks)
	assert.Equal(t, "100.00", report.Summary.PurchaseFunnel.ConversionRate)

	// Funil de onboarding: 2 apareceram, 1 completou
	assert.Equal(t, "50.00", report.Summary.Onboarding.CompletionRate)

	// Agregados do site
	assert.Equal(t, 50, report.Summary.Pageviews)
	assert.Equal(t, 25, report.Summary.BounceRate)
	assert.Equal(t, 20, report.Summary.AvgTime)
	assert.Equal(t, "30.00", report.Summary.ConversionRate) // 3 compras sobre 10 visitantes

	// Uma janela de 7 dias resolvida ao meio-dia toca 8 datas de calendário;
	// Range.Days reflete a duração, as séries cobrem cada data tocada
	assert.Equal(t, 7, report.Range.Days)
	assert.Len(t, report.Charts.NewUsers, 8)
	assert.Len(t, report.Charts.Purchases, 8)

	// Detalhamento
	assert.Equal(t, []domain.NameValue{
		{Name: "add", Value: 1},
		{Name: "edit", Value: 0},
		{Name: "delete", Value: 0},
	}, report.Breakdown.AlarmTypes)
	assert.Equal(t, domain.PurchaseClicks{Annual: 1, Lifetime: 1, Monthly: 1}, report.Breakdown.PurchaseClicks)

	// Janela ecoada para o cliente
	assert.Equal(t, window.StartAt, report.Range.StartAt)
	assert.Equal(t, window.EndAt, report.Range.EndAt)
	assert.Equal(t, "Últimos 7 dias", report.Range.Label)
}

func TestReportingService_BuildDashboard_QuedaDeVisitantes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)

	source := mocks.NewMockAnalyticsSource(ctrl)
	service := &ReportingService{
		source: source,
		loc:    time.Local,
		now:    func() time.Time { return now },
	}

	window := ResolveWindow("7", nil, nil, now)
	previous := window.Previous()

	// Instância sem nenhum evento instrumentado: apenas os agregados existem
	source.EXPECT().
		FetchEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	source.EXPECT().
		FetchStats(gomock.Any(), window).
		Return(&domain.SiteStats{Visitors: 5, Visits: 5}, nil)

	source.EXPECT().
		FetchStats(gomock.Any(), previous).
		Return(&domain.SiteStats{Visitors: 50, Visits: 50}, nil)

	report, err := service.BuildDashboard(context.Background(), "7", nil, nil)

	require.NoError(t, err)
	require.NotNil(t, report)

	// Uma queda de 50 para 5 visitantes precisa aparecer como variação negativa
	assert.Equal(t, -90, report.Summary.VisitorChange)
	assert.Equal(t, 5, report.Summary.ActiveUsers)
}

func TestReportingService_BuildDashboard_FalhaNaBusca(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockAnalyticsSource(ctrl)
	service := &ReportingService{
		source: source,
		loc:    time.Local,
		now:    time.Now,
	}

	fetchErr := errors.New("umami indisponível")

	// Qualquer falha em qualquer série aborta a montagem inteira
	source.EXPECT().
		FetchEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.TimeWindow, name string) ([]domain.Event, error) {
			if name == domain.EventPurchaseSuccess {
				return nil, fetchErr
			}
			return nil, nil
		}).
		AnyTimes()

	source.EXPECT().
		FetchStats(gomock.Any(), gomock.Any()).
		Return(&domain.SiteStats{}, nil).
		AnyTimes()

	report, err := service.BuildDashboard(context.Background(), "7", nil, nil)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, fetchErr)
}
