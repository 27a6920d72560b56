package umami

import (
	"context"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/umamiclient"
	"github.com/echopie/alarmone-insights-api/internal/config"
	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// UmamiIntegrator converte as respostas brutas do Umami para o domínio
type UmamiIntegrator struct {
	cfg    *config.Config
	Client umamiclient.Client
}

func New(cfg *config.Config, client umamiclient.Client) *UmamiIntegrator {
	return &UmamiIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchEvents busca os eventos da janela, opcionalmente filtrados por nome
func (s *UmamiIntegrator) FetchEvents(ctx context.Context, window domain.TimeWindow, eventName string) ([]domain.Event, error) {
	records, err := s.Client.GetEvents(ctx, window, eventName)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"event_name": eventName,
			"start_at":   window.StartAt,
			"end_at":     window.EndAt,
			"error":      err.Error(),
		}).Error("insights: failed to get events from Umami API")
		return nil, err
	}

	events := make([]domain.Event, 0, len(records))
	for _, record := range records {
		events = append(events, domain.Event{
			EventName: record.EventName,
			CreatedAt: record.CreatedAt,
			VisitID:   record.VisitID,
		})
	}

	logrus.WithFields(logrus.Fields{
		"event_name": eventName,
		"count":      len(events),
	}).Debug("insights: successfully retrieved events")

	return events, nil
}

// FetchStats busca os agregados de uma janela
func (s *UmamiIntegrator) FetchStats(ctx context.Context, window domain.TimeWindow) (*domain.SiteStats, error) {
	resp, err := s.Client.GetStats(ctx, window)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"start_at": window.StartAt,
			"end_at":   window.EndAt,
			"error":    err.Error(),
		}).Error("insights: failed to get stats from Umami API")
		return nil, err
	}

	return factorySiteStats(resp), nil
}

func factorySiteStats(resp *umamidomain.StatsResponse) *domain.SiteStats {
	if resp == nil {
		return nil
	}

	return &domain.SiteStats{
		Visitors:  resp.Visitors.Value,
		Visits:    resp.Visits.Value,
		Pageviews: resp.Pageviews.Value,
		Bounces:   resp.Bounces.Value,
		TotalTime: resp.TotalTime.Value,
	}
}
