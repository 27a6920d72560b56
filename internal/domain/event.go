package domain

import "time"

// Nomes de eventos rastreados pelo app AlarmOne no Umami
const (
	EventAppLaunch       = "app.launch"
	EventNewUser         = "new.user"
	EventDailyActive     = "user.daily.active"
	EventPurchaseSuccess = "setting.purchase.success"
	EventPurchaseAnnual  = "setting.purchase.annual.click"
	EventPurchaseLife    = "setting.purchase.lifetime.click"
	EventPurchaseMonthly = "setting.purchase.monthly.click"
	EventPurchaseFailed  = "setting.purchase.failed"
	EventPurchaseCancel  = "setting.purchase.cancel"
	EventAlarmAdd        = "alarm.add"
	EventAlarmEdit       = "alarm.edit"
	EventAlarmDelete     = "alarm.delete"
	EventOnboardAppear   = "onboarding.appear"
	EventOnboardSkip     = "onboarding.skip"
	EventOnboardComplete = "onboarding.complete"
	EventRatingShown     = "rating.popup.shown"
	EventICloudClick     = "icloud.click"
)

// Event é um registro de evento retornado pelo Umami, imutável após a busca
type Event struct {
	EventName string `json:"eventName"`
	CreatedAt int64  `json:"createdAt"` // epoch em milissegundos
	VisitID   string `json:"visitId"`
}

// TimeWindow delimita uma consulta por timestamps em milissegundos
type TimeWindow struct {
	StartAt int64 `json:"startAt"`
	EndAt   int64 `json:"endAt"`
}

// Duration retorna a duração da janela
func (w TimeWindow) Duration() int64 {
	return w.EndAt - w.StartAt
}

// Previous deriva a janela de comparação de mesma duração imediatamente anterior
func (w TimeWindow) Previous() TimeWindow {
	return TimeWindow{
		StartAt: w.StartAt - w.Duration(),
		EndAt:   w.StartAt,
	}
}

// Days retorna a quantidade de dias cobertos pela janela, arredondando para cima
func (w TimeWindow) Days() int {
	const dayMillis = 24 * 60 * 60 * 1000

	duration := w.Duration()
	days := duration / dayMillis
	if duration%dayMillis != 0 {
		days++
	}

	return int(days)
}

// StartTime retorna o início da janela no fuso informado
func (w TimeWindow) StartTime(loc *time.Location) time.Time {
	return time.UnixMilli(w.StartAt).In(loc)
}

// EndTime retorna o fim da janela no fuso informado
func (w TimeWindow) EndTime(loc *time.Location) time.Time {
	return time.UnixMilli(w.EndAt).In(loc)
}

// DailyBucket é a contagem de eventos de um dia dentro de uma janela
type DailyBucket struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// VisitSet indexa identificadores de visita para testes de pertinência
type VisitSet map[string]struct{}

// NewVisitSet monta um VisitSet a partir dos visitIds de uma lista de eventos
func NewVisitSet(events []Event) VisitSet {
	set := make(VisitSet, len(events))
	for _, e := range events {
		if e.VisitID != "" {
			set[e.VisitID] = struct{}{}
		}
	}
	return set
}

// Contains verifica se o identificador de visita pertence ao conjunto
func (s VisitSet) Contains(visitID string) bool {
	_, ok := s[visitID]
	return ok
}
