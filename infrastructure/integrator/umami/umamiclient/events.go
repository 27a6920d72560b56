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

// GetEvents busca os registros de eventos de uma janela, limitado ao
// pageSize configurado. eventName vazio retorna eventos de qualquer nome.
func (c *UmamiClient) GetEvents(ctx context.Context, window domain.TimeWindow, eventName string) ([]umamidomain.EventRecord, error) {
	startTime := time.Now()

	records, err := c.getEvents(ctx, window, eventName, true)
	c.recordCall("events", err, time.Since(startTime).Seconds())

	return records, err
}

func (c *UmamiClient) getEvents(ctx context.Context, window domain.TimeWindow, eventName string, retryOnInvalidToken bool) ([]umamidomain.EventRecord, error) {
	token, err := c.Credentials.Token(ctx)
	if err != nil {
		return nil, err
	}

	websiteID, err := c.Credentials.WebsiteID(ctx)
	if err != nil {
		return nil, err
	}

	baseURL := fmt.Sprintf("%s/api/websites/%s/events", c.Cfg.Umami.BaseURL, websiteID)

	params := url.Values{}
	params.Add("startAt", strconv.FormatInt(window.StartAt, 10))
	params.Add("endAt", strconv.FormatInt(window.EndAt, 10))
	params.Add("pageSize", strconv.Itoa(c.Cfg.Umami.PageSize))
	if eventName != "" {
		params.Add("event", eventName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição de eventos")
		return nil, umamidomain.NewFetchError("events", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar eventos do Umami")
		return nil, umamidomain.NewFetchError("events", err)
	}
	defer resp.Body.Close()

	body, err := c.Credentials.HandleResponse("events", resp)
	if err != nil {
		// Token recusado: repetir uma única vez após novo login
		if errors.Is(err, ErrTokenInvalidated) {
			if retryOnInvalidToken {
				return c.getEvents(ctx, window, eventName, false)
			}
			return nil, umamidomain.NewAuthError("events", err)
		}
		return nil, err
	}

	var response umamidomain.EventsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de eventos")
		return nil, umamidomain.NewMalformedError("events", err)
	}

	return response.Data, nil
}
