package domain

// SiteStats são os agregados pré-calculados do Umami para uma janela
type SiteStats struct {
	Visitors  int `json:"visitors"`
	Visits    int `json:"visits"`
	Pageviews int `json:"pageviews"`
	Bounces   int `json:"bounces"`
	TotalTime int `json:"totaltime"` // segundos somados das visitas
}

// AvgVisitTime retorna a duração média de visita em segundos
func (s SiteStats) AvgVisitTime() int {
	if s.Visits == 0 {
		return 0
	}
	return s.TotalTime / s.Visits
}

// PurchaseCounts é a classificação das compras por tipo de plano.
// O invariante Annual+Lifetime+Monthly+Unknown == total de compras vale
// para qualquer entrada.
type PurchaseCounts struct {
	Total    int `json:"total"`
	Monthly  int `json:"monthly"`
	Annual   int `json:"annual"`
	Lifetime int `json:"lifetime"`
	Unknown  int `json:"unknown"`
}

// PurchaseFunnel resume o funil de compra (clique → sucesso)
type PurchaseFunnel struct {
	Clicks         int    `json:"clicks"`
	Success        int    `json:"success"`
	Failed         int    `json:"failed"`
	Cancel         int    `json:"cancel"`
	ConversionRate string `json:"conversionRate"` // percentual com duas casas
}

// OnboardingFunnel resume o funil de introdução de novos usuários
type OnboardingFunnel struct {
	Appear         int    `json:"appear"`
	Skip           int    `json:"skip"`
	Complete       int    `json:"complete"`
	CompletionRate string `json:"completionRate"` // percentual com duas casas
}

// DashboardSummary são os cartões de métricas do dashboard
type DashboardSummary struct {
	AppLaunches    int              `json:"appLaunches"`
	NewUsers       int              `json:"newUsers"`
	NewUsersChange int              `json:"newUsersChange"`
	ActiveUsers    int              `json:"activeUsers"`
	Visitors       int              `json:"visitors"`
	VisitorChange  int              `json:"visitorChange"`
	VipUsers       int              `json:"vipUsers"`
	AnnualVip      int              `json:"annualVip"`
	LifetimeVip    int              `json:"lifetimeVip"`
	Purchases      PurchaseCounts   `json:"purchases"`
	AlarmsAdded    int              `json:"alarmsAdded"`
	AlarmsEdited   int              `json:"alarmsEdited"`
	AlarmsDeleted  int              `json:"alarmsDeleted"`
	PurchaseFunnel PurchaseFunnel   `json:"purchaseFunnel"`
	Onboarding     OnboardingFunnel `json:"onboarding"`
	RatingShown    int              `json:"ratingShown"`
	// A chave "iclickCloud" é mantida como o dashboard original a espera
	ICloudClicks   int    `json:"iclickCloud"`
	ConversionRate string `json:"conversionRate"` // compras / visitantes
	Pageviews      int    `json:"pageviews"`
	BounceRate     int    `json:"bounceRate"`
	AvgTime        int    `json:"avgTime"`
}

// DashboardCharts são as séries diárias {date,count} dos gráficos de linha
type DashboardCharts struct {
	AppLaunches []DailyBucket `json:"appLaunches"`
	NewUsers    []DailyBucket `json:"newUsers"`
	ActiveUsers []DailyBucket `json:"activeUsers"`
	Purchases   []DailyBucket `json:"purchases"`
}

// NameValue é um par nome/contagem para histogramas do dashboard
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PurchaseClicks são as contagens de cliques por tipo de plano
type PurchaseClicks struct {
	Annual   int `json:"annual"`
	Lifetime int `json:"lifetime"`
	Monthly  int `json:"monthly"`
}

// DashboardBreakdown agrupa os histogramas secundários
type DashboardBreakdown struct {
	AlarmTypes     []NameValue    `json:"alarmTypes"`
	PurchaseClicks PurchaseClicks `json:"purchaseClicks"`
}

// RangeInfo ecoa a janela resolvida para o cliente
type RangeInfo struct {
	StartAt int64  `json:"startAt"`
	EndAt   int64  `json:"endAt"`
	Days    int    `json:"days"`
	Label   string `json:"label"`
}

// DashboardReport é a resposta completa de GET /metrics
type DashboardReport struct {
	Summary   DashboardSummary   `json:"summary"`
	Charts    DashboardCharts    `json:"charts"`
	Breakdown DashboardBreakdown `json:"breakdown"`
	Range     RangeInfo          `json:"range"`
}
