package umamiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// WebsiteID resolve e cacheia o identificador do primeiro website da
// instância, que é o site de telemetria do app
func (cm *CredentialManager) WebsiteID(ctx context.Context) (string, error) {
	cm.mu.Lock()
	if cm.websiteID != "" {
		id := cm.websiteID
		cm.mu.Unlock()
		return id, nil
	}
	cm.mu.Unlock()

	websites, err := cm.listWebsites(ctx)
	if err != nil {
		return "", err
	}

	if len(websites) == 0 {
		return "", umamidomain.NewMalformedError("websites", errors.New("nenhum website cadastrado na instância"))
	}

	cm.mu.Lock()
	cm.websiteID = websites[0].ID
	cm.mu.Unlock()

	logrus.WithField("website_id", websites[0].ID).Info("Website do Umami resolvido com sucesso")

	return websites[0].ID, nil
}

// listWebsites busca os websites cadastrados na instância do Umami
func (cm *CredentialManager) listWebsites(ctx context.Context) ([]umamidomain.Website, error) {
	token, err := cm.Token(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/websites", cm.cfg.Umami.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, umamidomain.NewFetchError("websites", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := cm.httpClient.Do(req)
	if err != nil {
		return nil, umamidomain.NewFetchError("websites", err)
	}
	defer resp.Body.Close()

	body, err := cm.HandleResponse("websites", resp)
	if err != nil {
		if errors.Is(err, ErrTokenInvalidated) {
			return nil, umamidomain.NewAuthError("websites", err)
		}
		return nil, err
	}

	var response umamidomain.WebsitesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, umamidomain.NewMalformedError("websites", err)
	}

	return response.Data, nil
}
