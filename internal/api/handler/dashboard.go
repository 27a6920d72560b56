package handler

import (
	"encoding/json"
	"net/http"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/echopie/alarmone-insights-api/internal/usecases/reporting"
	"github.com/echopie/alarmone-insights-api/pkg/log"
	"github.com/echopie/alarmone-insights-api/pkg/utils"
)

// GetDashboardMetrics monta o relatório do dashboard para o período informado
// via query string (range, ou startAt e endAt em epoch millis)
func GetDashboardMetrics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		query := r.URL.Query()
		rangeToken := query.Get("range")
		startAt := utils.ParseEpochMillis(query.Get("startAt"))
		endAt := utils.ParseEpochMillis(query.Get("endAt"))

		logger.WithField("range", rangeToken).Info("dashboard: montando métricas")

		report, err := service.BuildDashboard(r.Context(), rangeToken, startAt, endAt)
		if err != nil {
			logger.WithFields(log.Fields{
				"error": err.Error(),
				"kind":  string(umamidomain.KindOf(err)),
			}).Error("dashboard: erro ao buscar dados de analytics")

			// O cliente recebe sempre a mesma mensagem genérica, o detalhe
			// do erro fica apenas nos logs
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Failed to fetch analytics data",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("dashboard: erro ao enviar resposta")
		}
	})
}
