package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/echopie/alarmone-insights-api/internal/usecases/reporting/mocks"
)

func TestGetDashboardMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	handler := GetDashboardMetrics(reporter)

	t.Run("sucesso codifica o relatório completo", func(t *testing.T) {
		report := &domain.DashboardReport{
			Summary: domain.DashboardSummary{
				NewUsers: 3,
				Visitors: 10,
			},
			Range: domain.RangeInfo{Days: 7, Label: "Últimos 7 dias"},
		}

		reporter.EXPECT().
			BuildDashboard(gomock.Any(), "7", gomock.Nil(), gomock.Nil()).
			Return(report, nil)

		req := httptest.NewRequest(http.MethodGet, "/metrics?range=7", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		body := rec.Body.String()
		assert.Contains(t, body, `"newUsers":3`)
		assert.Contains(t, body, `"label":"Últimos 7 dias"`)
	})

	t.Run("startAt e endAt são repassados ao serviço", func(t *testing.T) {
		reporter.EXPECT().
			BuildDashboard(gomock.Any(), "custom", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, _ string, startAt, endAt *int64) (*domain.DashboardReport, error) {
				require.NotNil(t, startAt)
				require.NotNil(t, endAt)
				assert.Equal(t, int64(1700000000000), *startAt)
				assert.Equal(t, int64(1700600000000), *endAt)
				return &domain.DashboardReport{}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/metrics?range=custom&startAt=1700000000000&endAt=1700600000000", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("qualquer falha responde 500 com a mensagem genérica", func(t *testing.T) {
		failures := []error{
			umamidomain.NewAuthError("login", errors.New("credenciais recusadas")),
			umamidomain.NewFetchError("events", errors.New("conexão recusada")),
			umamidomain.NewMalformedError("stats", errors.New("json inesperado")),
			errors.New("falha qualquer"),
		}

		for _, failure := range failures {
			reporter.EXPECT().
				BuildDashboard(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, failure)

			req := httptest.NewRequest(http.MethodGet, "/metrics?range=7", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			// O detalhe do erro fica nos logs; o cliente vê sempre o mesmo corpo
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error": "Failed to fetch analytics data"}`, rec.Body.String())
		}
	})
}
