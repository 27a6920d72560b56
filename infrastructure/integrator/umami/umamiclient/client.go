package umamiclient

import (
	"context"
	"net/http"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/echopie/alarmone-insights-api/internal/config"
	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/echopie/alarmone-insights-api/pkg/metrics"
)

// Client é a interface de baixo nível para a API REST do Umami
type Client interface {
	GetEvents(ctx context.Context, window domain.TimeWindow, eventName string) ([]umamidomain.EventRecord, error)
	GetStats(ctx context.Context, window domain.TimeWindow) (*umamidomain.StatsResponse, error)
}

type UmamiClient struct {
	Cfg         *config.Config
	Credentials *CredentialManager

	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(cfg *config.Config, credentials *CredentialManager, m *metrics.Metrics) Client {
	return &UmamiClient{
		Cfg:         cfg,
		Credentials: credentials,
		httpClient:  &http.Client{},
		metrics:     m,
	}
}

// recordCall registra a chamada no Prometheus quando há métricas configuradas
func (c *UmamiClient) recordCall(op string, err error, elapsedSeconds float64) {
	if c.metrics == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
		c.metrics.RecordUmamiFailure(op, string(umamidomain.KindOf(err)))
	}

	c.metrics.UmamiAPICalls.WithLabelValues(op, status).Inc()
	c.metrics.UmamiAPIDuration.WithLabelValues(op).Observe(elapsedSeconds)
}
