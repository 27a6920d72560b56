package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/echopie/alarmone-insights-api/infrastructure/repository"
	"github.com/echopie/alarmone-insights-api/pkg/apiErrors"
	"github.com/echopie/alarmone-insights-api/pkg/utils"
)

// GetReportHistory retorna os resumos diários arquivados no banco.
// Aceita startDate e endDate (YYYY-MM-DD); sem filtros, retorna os últimos 30 dias.
func GetReportHistory(repo repository.DailyReportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetReportHistory")

		query := r.URL.Query()

		endDate := time.Now()
		startDate := endDate.AddDate(0, 0, -30)

		if raw := query.Get("startDate"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "startDate inválida, use o formato YYYY-MM-DD", nil)
				return
			}
			startDate = *parsed
		}

		if raw := query.Get("endDate"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "endDate inválida, use o formato YYYY-MM-DD", nil)
				return
			}
			endDate = *parsed
		}

		if endDate.Before(startDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "endDate anterior a startDate", nil)
			return
		}

		reports, err := repo.GetByDateRange(startDate, endDate)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico de relatórios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reports); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
