package umamidomain

// LoginResponse é a resposta de POST /api/auth/login
type LoginResponse struct {
	Token string `json:"token"`
}

// Website é um site cadastrado na instância do Umami
type Website struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WebsitesResponse é a resposta de GET /api/websites
type WebsitesResponse struct {
	Data []Website `json:"data"`
}

// EventRecord é um evento bruto retornado por GET /api/websites/:id/events
type EventRecord struct {
	ID        string `json:"id"`
	EventName string `json:"eventName"`
	CreatedAt int64  `json:"createdAt"`
	VisitID   string `json:"visitId"`
	URLPath   string `json:"urlPath"`
}

// EventsResponse é a resposta paginada do endpoint de eventos
type EventsResponse struct {
	Data  []EventRecord `json:"data"`
	Count int           `json:"count"`
}

// MetricValue envolve um valor numérico do endpoint de estatísticas.
// Versões antigas do Umami devolvem o número puro; as atuais, {"value": n}.
type MetricValue struct {
	Value int `json:"value"`
}

// UnmarshalJSON aceita tanto o número puro quanto o objeto {"value": n}
func (m *MetricValue) UnmarshalJSON(data []byte) error {
	type wrapped struct {
		Value int `json:"value"`
	}

	var w wrapped
	if err := jsonUnmarshal(data, &w); err == nil && len(data) > 0 && data[0] == '{' {
		m.Value = w.Value
		return nil
	}

	var n int
	if err := jsonUnmarshal(data, &n); err != nil {
		return err
	}

	m.Value = n
	return nil
}

// StatsResponse é a resposta de GET /api/websites/:id/stats
type StatsResponse struct {
	Pageviews MetricValue `json:"pageviews"`
	Visitors  MetricValue `json:"visitors"`
	Visits    MetricValue `json:"visits"`
	Bounces   MetricValue `json:"bounces"`
	TotalTime MetricValue `json:"totaltime"`
}
