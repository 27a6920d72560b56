package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/echopie/alarmone-insights-api/infrastructure/repository"
	"github.com/echopie/alarmone-insights-api/internal/config"
	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/echopie/alarmone-insights-api/internal/usecases/reporting"
	"github.com/echopie/alarmone-insights-api/pkg/metrics"
)

// DailyReportSyncConfig representa a configuração do agendador de relatórios diários
type DailyReportSyncConfig struct {
	CronSchedule  string
	LookbackDays  int
	RetentionDays int
	SyncEnabled   bool
}

// DailyReportSyncService arquiva no banco o resumo do dashboard de cada dia
// fechado, preservando o histórico mesmo que o Umami expire os eventos brutos
type DailyReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailyReportSyncConfig
	reporter            reporting.Reporter
	reportRepo          repository.DailyReportRepository
	metrics             *metrics.Metrics
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewDailyReportSyncService cria uma nova instância do serviço de arquivamento diário
func NewDailyReportSyncService(
	reporter reporting.Reporter,
	reportRepo repository.DailyReportRepository,
	m *metrics.Metrics,
	appConfig *config.Config,
) *DailyReportSyncService {
	syncConfig := DailyReportSyncConfig{
		CronSchedule:  appConfig.DailyReportSync.CronSchedule,
		LookbackDays:  appConfig.DailyReportSync.LookbackDays,
		RetentionDays: appConfig.DailyReportSync.RetentionDays,
		SyncEnabled:   appConfig.DailyReportSync.Enabled,
	}

	if syncConfig.LookbackDays < 1 {
		syncConfig.LookbackDays = 1
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"lookback_days":  syncConfig.LookbackDays,
		"retention_days": syncConfig.RetentionDays,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios diários carregada")

	return &DailyReportSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		reporter:    reporter,
		reportRepo:  reportRepo,
		metrics:     m,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *DailyReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Arquivamento de relatórios diários desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de relatórios diários")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDailyReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar arquivamento de relatórios diários: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios diários")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDailyReports monta e arquiva o resumo de cada dia fechado do período de lookback
func (s *DailyReportSyncService) syncDailyReports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Arquivamento de relatórios diários já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithField("lookback_days", s.config.LookbackDays).Info("Iniciando arquivamento de relatórios diários")

	archived := 0
	for i := 1; i <= s.config.LookbackDays; i++ {
		date := time.Now().AddDate(0, 0, -i)
		if err := s.archiveDay(date); err != nil {
			logrus.WithFields(logrus.Fields{
				"date":  date.Format(time.DateOnly),
				"error": err.Error(),
			}).Error("Erro ao arquivar relatório diário")
			s.recordArchive("error")
			continue
		}
		archived++
		s.recordArchive("success")
	}

	if s.config.RetentionDays > 0 {
		deleted, err := s.reportRepo.DeleteOlderThan(s.config.RetentionDays)
		if err != nil {
			logrus.WithError(err).Error("Erro ao remover relatórios diários antigos")
		} else if deleted > 0 {
			logrus.WithField("deleted", deleted).Info("Relatórios diários antigos removidos")
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"archived": archived,
	}).Info("Arquivamento de relatórios diários concluído")

	s.lastSyncCompletedAt = time.Now()
}

// archiveDay monta o dashboard do dia inteiro e grava o resumo no banco
func (s *DailyReportSyncService) archiveDay(date time.Time) error {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)

	startAt := dayStart.UnixMilli()
	endAt := dayEnd.UnixMilli()

	report, err := s.reporter.BuildDashboard(context.Background(), "today", &startAt, &endAt)
	if err != nil {
		return fmt.Errorf("erro ao montar dashboard do dia: %w", err)
	}

	entry := &domain.DailyReportEntry{
		Date:    dayStart,
		Summary: &report.Summary,
	}

	if err := s.reportRepo.SaveOrUpdate(entry); err != nil {
		return fmt.Errorf("erro ao salvar relatório diário: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"date":      dayStart.Format(time.DateOnly),
		"new_users": report.Summary.NewUsers,
		"purchases": report.Summary.Purchases.Total,
	}).Info("Relatório diário arquivado com sucesso")

	return nil
}

func (s *DailyReportSyncService) recordArchive(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.DailyReportArchiveTotal.WithLabelValues(status).Inc()
}

// TriggerManualSync inicia manualmente o arquivamento de relatórios diários
func (s *DailyReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Arquivamento de relatórios diários já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando arquivamento manual de relatórios diários")
	go s.syncDailyReports()
}

// GetStatus retorna o status atual do agendador
func (s *DailyReportSyncService) GetStatus() map[string]any {
	retention := "dados mantidos permanentemente"
	if s.config.RetentionDays > 0 {
		retention = fmt.Sprintf("dados mantidos por %d dias", s.config.RetentionDays)
	}

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"retention_policy":       retention,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
