package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/echopie/alarmone-insights-api/infrastructure/database/postgres"
	"github.com/echopie/alarmone-insights-api/internal/domain"
)

const dailyReportsTable = "daily_reports dr"

type DailyReportRepository interface {
	GetByDate(date time.Time) (*domain.DailyReportEntry, error)
	GetByDateRange(startDate, endDate time.Time) ([]*domain.DailyReportEntry, error)
	SaveOrUpdate(report *domain.DailyReportEntry) error
	DeleteOlderThan(days int) (int64, error)
}

type dailyReportRepository struct {
	conn *postgres.Connection
}

func NewDailyReportRepository(conn *postgres.Connection) DailyReportRepository {
	return &dailyReportRepository{
		conn: conn,
	}
}

func (r *dailyReportRepository) GetByDate(date time.Time) (*domain.DailyReportEntry, error) {
	query, args, err := squirrel.
		Select("dr.id, dr.date, dr.summary, dr.created_at, dr.updated_at").
		From(dailyReportsTable).
		Where(squirrel.Eq{"dr.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	report, err := r.scanReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear relatório diário: %w", err)
	}

	return report, nil
}

func (r *dailyReportRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.DailyReportEntry, error) {
	query, args, err := squirrel.
		Select("dr.id, dr.date, dr.summary, dr.created_at, dr.updated_at").
		From(dailyReportsTable).
		Where(squirrel.GtOrEq{"dr.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"dr.date": endDate.Format("2006-01-02")}).
		OrderBy("dr.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.DailyReportEntry, 0)
	for rows.Next() {
		report, err := r.scanReportRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear relatórios diários: %w", err)
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reports, nil
}

func (r *dailyReportRepository) SaveOrUpdate(report *domain.DailyReportEntry) error {
	var summaryJSON []byte
	var err error

	if report.Summary != nil {
		summaryJSON, err = json.Marshal(report.Summary)
		if err != nil {
			return fmt.Errorf("erro ao serializar resumo para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("daily_reports").
		Columns("date", "summary").
		Values(
			report.Date.Format("2006-01-02"),
			summaryJSON,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				summary = EXCLUDED.summary,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *dailyReportRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query, args, err := squirrel.
		Delete("daily_reports").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *dailyReportRepository) scanReport(row *sql.Row) (*domain.DailyReportEntry, error) {
	report := &domain.DailyReportEntry{}
	var summaryJSON []byte
	var dateStr string

	err := row.Scan(
		&report.ID,
		&dateStr,
		&summaryJSON,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter data: %w", err)
	}
	report.Date = date

	if summaryJSON != nil {
		summary := &domain.DashboardSummary{}
		if err := json.Unmarshal(summaryJSON, summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do resumo: %w", err)
		}
		report.Summary = summary
	}

	return report, nil
}

func (r *dailyReportRepository) scanReportRows(rows *sql.Rows) (*domain.DailyReportEntry, error) {
	report := &domain.DailyReportEntry{}
	var summaryJSON []byte

	err := rows.Scan(
		&report.ID,
		&report.Date,
		&summaryJSON,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if summaryJSON != nil {
		summary := &domain.DashboardSummary{}
		if err := json.Unmarshal(summaryJSON, summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON do resumo: %w", err)
		}
		report.Summary = summary
	}

	return report, nil
}
