package reporting

import (
	"context"

	"github.com/echopie/alarmone-insights-api/internal/domain"
)

// AnalyticsSource abstrai a origem dos eventos e estatísticas de tráfego
type AnalyticsSource interface {
	FetchEvents(ctx context.Context, window domain.TimeWindow, eventName string) ([]domain.Event, error)
	FetchStats(ctx context.Context, window domain.TimeWindow) (*domain.SiteStats, error)
}

type Reporter interface {
	BuildDashboard(ctx context.Context, rangeToken string, startAt, endAt *int64) (*domain.DashboardReport, error)
}
