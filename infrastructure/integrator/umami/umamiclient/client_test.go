package umamiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	umamidomain "github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/domain"
	"github.com/echopie/alarmone-insights-api/internal/config"
	"github.com/echopie/alarmone-insights-api/internal/domain"
)

type fakeUmami struct {
	loginCalls  int32
	eventsCalls int32

	// respostas configuráveis por teste
	loginStatus   int
	eventsHandler func(w http.ResponseWriter, r *http.Request)
	statsBody     string
}

func (f *fakeUmami) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.loginCalls, 1)

		status := f.loginStatus
		if status == 0 {
			status = http.StatusOK
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		fmt.Fprintf(w, `{"token": "token-%d"}`, atomic.LoadInt32(&f.loginCalls))
	})

	mux.HandleFunc("/api/websites", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": "site-1", "name": "AlarmOne"}]}`)
	})

	mux.HandleFunc("/api/websites/site-1/events", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.eventsCalls, 1)
		f.eventsHandler(w, r)
	})

	mux.HandleFunc("/api/websites/site-1/stats", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, f.statsBody)
	})

	return mux
}

func newTestClient(baseURL string) *UmamiClient {
	cfg := &config.Config{
		Umami: config.Umami{
			BaseURL:  baseURL,
			Username: "admin",
			Password: "umami",
			PageSize: 1000,
		},
	}

	return &UmamiClient{
		Cfg:         cfg,
		Credentials: NewCredentialManager(cfg),
		httpClient:  &http.Client{},
	}
}

func TestUmamiClient_GetEvents(t *testing.T) {
	fake := &fakeUmami{
		eventsHandler: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			assert.Equal(t, "1000", r.URL.Query().Get("pageSize"))
			assert.Equal(t, "new.user", r.URL.Query().Get("event"))
			assert.Equal(t, "1000", r.URL.Query().Get("startAt"))
			assert.Equal(t, "2000", r.URL.Query().Get("endAt"))

			fmt.Fprint(w, `{"data": [
				{"id": "e1", "eventName": "new.user", "createdAt": 1500, "visitId": "v1"},
				{"id": "e2", "eventName": "new.user", "createdAt": 1600, "visitId": "v2"}
			], "count": 2}`)
		},
	}

	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := newTestClient(server.URL)
	window := domain.TimeWindow{StartAt: 1000, EndAt: 2000}

	records, err := client.GetEvents(context.Background(), window, "new.user")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new.user", records[0].EventName)
	assert.Equal(t, "v1", records[0].VisitID)

	// O login acontece uma única vez; chamadas seguintes reutilizam o token
	_, err = client.GetEvents(context.Background(), window, "new.user")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.loginCalls))
}

func TestUmamiClient_GetEvents_TokenRecusado(t *testing.T) {
	fake := &fakeUmami{}
	fake.eventsHandler = func(w http.ResponseWriter, r *http.Request) {
		// Primeira chamada recusa o token; a repetição após novo login passa
		if atomic.LoadInt32(&fake.eventsCalls) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data": [{"id": "e1", "eventName": "app.launch", "createdAt": 1500}], "count": 1}`)
	}

	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := newTestClient(server.URL)
	window := domain.TimeWindow{StartAt: 1000, EndAt: 2000}

	records, err := client.GetEvents(context.Background(), window, "app.launch")

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fake.loginCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&fake.eventsCalls))
}

func TestUmamiClient_GetStats(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "formato atual com objetos {value}",
			body: `{"pageviews": {"value": 50}, "visitors": {"value": 10}, "visits": {"value": 20}, "bounces": {"value": 5}, "totaltime": {"value": 400}}`,
		},
		{
			name: "formato antigo com números puros",
			body: `{"pageviews": 50, "visitors": 10, "visits": 20, "bounces": 5, "totaltime": 400}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUmami{statsBody: tt.body}

			server := httptest.NewServer(fake.handler())
			defer server.Close()

			client := newTestClient(server.URL)

			stats, err := client.GetStats(context.Background(), domain.TimeWindow{StartAt: 1000, EndAt: 2000})

			require.NoError(t, err)
			assert.Equal(t, 50, stats.Pageviews.Value)
			assert.Equal(t, 10, stats.Visitors.Value)
			assert.Equal(t, 20, stats.Visits.Value)
			assert.Equal(t, 5, stats.Bounces.Value)
			assert.Equal(t, 400, stats.TotalTime.Value)
		})
	}
}

func TestCredentialManager_LoginFalha(t *testing.T) {
	fake := &fakeUmami{loginStatus: http.StatusUnauthorized}

	server := httptest.NewServer(fake.handler())
	defer server.Close()

	cm := NewCredentialManager(&config.Config{
		Umami: config.Umami{BaseURL: server.URL, Username: "admin", Password: "errada"},
	})

	token, err := cm.Token(context.Background())

	assert.Empty(t, token)
	require.Error(t, err)
	assert.Equal(t, umamidomain.KindAuth, umamidomain.KindOf(err))
}
