package utils

import (
	"strconv"
	"time"
)

// ParseDate converte uma data no formato YYYY-MM-DD
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseEpochMillis converte um timestamp em milissegundos vindo da query string.
// Retorna nil quando o parâmetro está ausente ou não é numérico.
func ParseEpochMillis(raw string) *int64 {
	if raw == "" {
		return nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}

	return &ms
}

// DayKey formata um timestamp em milissegundos como a data local YYYY-MM-DD
func DayKey(epochMillis int64, loc *time.Location) string {
	return time.UnixMilli(epochMillis).In(loc).Format(time.DateOnly)
}
