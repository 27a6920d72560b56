package umamiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GetStats busca os agregados de visitantes/pageviews/rejeições de uma janela
func (c *UmamiClient) GetStats(ctx context.Context, window domain.TimeWindow) (*umamidomain.StatsResponse, error) {
	startTime := time.Now()

	stats, err := c.getStats(ctx, window, true)
	c.recordCall("stats", err, time.Since(startTime).Seconds())

	return stats, err
}

func (c *UmamiClient) getStats(ctx context.Context, window domain.TimeWindow, retryOnInvalidToken bool) (*umamidomain.StatsResponse, error) {
	token, err := c.Credentials.Token(ctx)
	if err != nil {
		return nil, err
	}

	websiteID, err := c.Credentials.WebsiteID(ctx)
	if err != nil {
		return nil, err
	}

	baseURL := fmt.Sprintf("%s/api/websites/%s/stats", c.Cfg.Umami.BaseURL, websiteID)

	params := url.Values{}
	params.Add("startAt", strconv.FormatInt(window.StartAt, 10))
	params.Add("endAt", strconv.FormatInt(window.EndAt, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição de estatísticas")
		return nil, umamidomain.NewFetchError("stats", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar estatísticas do Umami")
		return nil, umamidomain.NewFetchError("stats", err)
	}
	defer resp.Body.Close()

	body, err := c.Credentials.HandleResponse("stats", resp)
	if err != nil {
		if errors.Is(err, ErrTokenInvalidated) {
			if retryOnInvalidToken {
				return c.getStats(ctx, window, false)
			}
			return nil, umamidomain.NewAuthError("stats", err)
		}
		return nil, err
	}

	var response umamidomain.StatsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de estatísticas")
		return nil, umamidomain.NewMalformedError("stats", err)
	}

	return &response, nil
}
