package umamiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/echopie/alarmone-insights-api/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrTokenInvalidated sinaliza que o token em cache foi descartado após o
// Umami recusá-lo; a chamada deve ser repetida uma única vez.
var ErrTokenInvalidated = errors.New("token do Umami invalidado, tente novamente")

// CredentialManager guarda o token de acesso e o website resolvido pelo
// processo inteiro. O login é feito de forma preguiçosa na primeira chamada
// e protegido por mutex, então duas requisições concorrentes não disparam
// dois logins. Não há expiração: o token só é descartado quando o Umami
// responde 401.
type CredentialManager struct {
	cfg        *config.Config
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	websiteID string
}

// NewCredentialManager cria uma nova instância do gerenciador de credenciais
func NewCredentialManager(cfg *config.Config) *CredentialManager {
	return &CredentialManager{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Token retorna o token em cache, realizando o login na primeira chamada
func (cm *CredentialManager) Token(ctx context.Context) (string, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.token != "" {
		return cm.token, nil
	}

	return cm.loginLocked(ctx)
}

// loginLocked autentica no Umami. Chamador deve segurar cm.mu.
func (cm *CredentialManager) loginLocked(ctx context.Context) (string, error) {
	logrus.Info("Token do Umami não inicializado. Realizando login...")

	payload, err := json.Marshal(map[string]string{
		"username": cm.cfg.Umami.Username,
		"password": cm.cfg.Umami.Password,
	})
	if err != nil {
		return "", umamidomain.NewAuthError("login", err)
	}

	url := fmt.Sprintf("%s/api/auth/login", cm.cfg.Umami.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", umamidomain.NewAuthError("login", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cm.httpClient.Do(req)
	if err != nil {
		return "", umamidomain.NewAuthError("login", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", umamidomain.NewAuthError("login", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", umamidomain.NewAuthError("login",
			errors.Errorf("login falhou com status %d: %s", resp.StatusCode, string(body)))
	}

	var loginResp umamidomain.LoginResponse
	if err := json.Unmarshal(body, &loginResp); err != nil {
		return "", umamidomain.NewMalformedError("login", err)
	}

	if loginResp.Token == "" {
		return "", umamidomain.NewAuthError("login", errors.New("resposta de login sem token"))
	}

	cm.token = loginResp.Token
	logrus.Info("Login no Umami realizado com sucesso")

	return cm.token, nil
}

// Invalidate descarta o token em cache, forçando novo login na próxima chamada
func (cm *CredentialManager) Invalidate() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.token = ""
	logrus.Warn("Token do Umami descartado após recusa da API")
}

// HandleResponse lê o corpo da resposta e trata token recusado: o token em
// cache é invalidado e o chamador recebe ErrTokenInvalidated para repetir a
// chamada uma vez.
func (cm *CredentialManager) HandleResponse(op string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, umamidomain.NewFetchError(op, errors.Wrap(err, "erro ao ler resposta"))
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		cm.Invalidate()
		return nil, ErrTokenInvalidated
	}

	return nil, umamidomain.NewFetchError(op,
		errors.Errorf("resposta com status %d: %s", resp.StatusCode, string(body)))
}
