package domain

import "time"

// DailyReportEntry é um resumo do dashboard arquivado para um dia fechado.
// Alimentado pelo agendador noturno; o endpoint /metrics nunca lê daqui.
type DailyReportEntry struct {
	ID        int               `json:"id"`
	Date      time.Time         `json:"date"`
	Summary   *DashboardSummary `json:"summary"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
}
