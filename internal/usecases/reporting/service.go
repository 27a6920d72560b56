package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/echopie/alarmone-insights-api/internal/domain"
	"github.com/echopie/alarmone-insights-api/pkg/metrics"
	"github.com/echopie/alarmone-insights-api/pkg/utils"
)

// Definir o número máximo de buscas simultâneas no Umami
const maxConcurrent = 5

type ReportingService struct {
	source  AnalyticsSource
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time
}

func NewReportingService(source AnalyticsSource, m *metrics.Metrics) *ReportingService {
	return &ReportingService{
		source:  source,
		metrics: m,
		loc:     time.Local,
		now:     time.Now,
	}
}

// BuildDashboard monta o relatório completo do dashboard para o período
// solicitado. Todas as séries de eventos e os agregados do site são buscados
// em paralelo; qualquer falha aborta a montagem inteira, nunca devolvemos
// um relatório parcial.
func (s *ReportingService) BuildDashboard(ctx context.Context, rangeToken string, startAt, endAt *int64) (*domain.DashboardReport, error) {
	buildStart := time.Now()

	window := ResolveWindow(rangeToken, startAt, endAt, s.now())
	previous := window.Previous()

	logrus.WithFields(logrus.Fields{
		"range":    rangeToken,
		"start_at": window.StartAt,
		"end_at":   window.EndAt,
	}).Info("Montando relatório do dashboard")

	currentNames := []string{
		domain.EventAppLaunch,
		domain.EventNewUser,
		domain.EventDailyActive,
		domain.EventPurchaseSuccess,
		domain.EventPurchaseAnnual,
		domain.EventPurchaseLife,
		domain.EventPurchaseMonthly,
		domain.EventPurchaseFailed,
		domain.EventPurchaseCancel,
		domain.EventAlarmAdd,
		domain.EventAlarmEdit,
		domain.EventAlarmDelete,
		domain.EventOnboardAppear,
		domain.EventOnboardSkip,
		domain.EventOnboardComplete,
		domain.EventRatingShown,
		domain.EventICloudClick,
	}
	previousNames := []string{
		domain.EventNewUser,
	}

	var (
		current   = make(map[string][]domain.Event, len(currentNames))
		prior     = make(map[string][]domain.Event, len(previousNames))
		stats     *domain.SiteStats
		prevStats *domain.SiteStats
		mutex     sync.Mutex
		firstErr  error
		wg        sync.WaitGroup
	)

	semaphore := make(chan struct{}, maxConcurrent)

	setErr := func(err error) {
		mutex.Lock()
		defer mutex.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	fetch := func(window domain.TimeWindow, name string, into map[string][]domain.Event) {
		defer wg.Done()

		// Adquirir uma vaga no semáforo
		semaphore <- struct{}{}
		defer func() { <-semaphore }()

		events, err := s.source.FetchEvents(ctx, window, name)
		if err != nil {
			setErr(err)
			return
		}

		mutex.Lock()
		into[name] = events
		mutex.Unlock()
	}

	for _, name := range currentNames {
		wg.Add(1)
		go fetch(window, name, current)
	}
	for _, name := range previousNames {
		wg.Add(1)
		go fetch(previous, name, prior)
	}

	fetchStats := func(window domain.TimeWindow, into **domain.SiteStats) {
		defer wg.Done()

		semaphore <- struct{}{}
		defer func() { <-semaphore }()

		result, err := s.source.FetchStats(ctx, window)
		if err != nil {
			setErr(err)
			return
		}

		mutex.Lock()
		*into = result
		mutex.Unlock()
	}

	// Os agregados do período anterior alimentam a variação de visitantes
	wg.Add(2)
	go fetchStats(window, &stats)
	go fetchStats(previous, &prevStats)

	wg.Wait()

	if firstErr != nil {
		s.recordBuild("error", buildStart)
		return nil, firstErr
	}

	report := s.compose(window, rangeToken, current, prior, stats, prevStats)

	s.recordBuild("success", buildStart)

	logrus.WithFields(logrus.Fields{
		"new_users": report.Summary.NewUsers,
		"purchases": report.Summary.Purchases.Total,
		"days":      report.Range.Days,
	}).Info("Relatório do dashboard montado com sucesso")

	return report, nil
}

func (s *ReportingService) compose(
	window domain.TimeWindow,
	rangeToken string,
	current map[string][]domain.Event,
	prior map[string][]domain.Event,
	stats *domain.SiteStats,
	prevStats *domain.SiteStats,
) *domain.DashboardReport {
	purchases := ClassifyPurchases(
		current[domain.EventPurchaseSuccess],
		current[domain.EventPurchaseAnnual],
		current[domain.EventPurchaseLife],
		current[domain.EventPurchaseMonthly],
	)

	newUsers := len(current[domain.EventNewUser])
	activeUsers := len(current[domain.EventDailyActive])
	if activeUsers == 0 {
		// Versões antigas do app não emitem o evento diário de atividade
		activeUsers = stats.Visitors
	}

	purchaseClicks := domain.PurchaseClicks{
		Annual:   len(current[domain.EventPurchaseAnnual]),
		Lifetime: len(current[domain.EventPurchaseLife]),
		Monthly:  len(current[domain.EventPurchaseMonthly]),
	}
	totalClicks := purchaseClicks.Annual + purchaseClicks.Lifetime + purchaseClicks.Monthly

	onboardingAppear := len(current[domain.EventOnboardAppear])
	onboardingComplete := len(current[domain.EventOnboardComplete])

	summary := domain.DashboardSummary{
		AppLaunches:    len(current[domain.EventAppLaunch]),
		NewUsers:       newUsers,
		NewUsersChange: PercentChange(newUsers, len(prior[domain.EventNewUser])),
		ActiveUsers:    activeUsers,
		Visitors:       stats.Visitors,
		VisitorChange:  PercentChange(stats.Visitors, prevStats.Visitors),
		VipUsers:       purchases.Annual + purchases.Lifetime,
		AnnualVip:      purchases.Annual,
		LifetimeVip:    purchases.Lifetime,
		Purchases:      purchases,
		AlarmsAdded:    len(current[domain.EventAlarmAdd]),
		AlarmsEdited:   len(current[domain.EventAlarmEdit]),
		AlarmsDeleted:  len(current[domain.EventAlarmDelete]),
		PurchaseFunnel: domain.PurchaseFunnel{
			Clicks:         totalClicks,
			Success:        purchases.Total,
			Failed:         len(current[domain.EventPurchaseFailed]),
			Cancel:         len(current[domain.EventPurchaseCancel]),
			ConversionRate: ConversionRate(purchases.Total, totalClicks),
		},
		Onboarding: domain.OnboardingFunnel{
			Appear:         onboardingAppear,
			Skip:           len(current[domain.EventOnboardSkip]),
			Complete:       onboardingComplete,
			CompletionRate: ConversionRate(onboardingComplete, onboardingAppear),
		},
		RatingShown:    len(current[domain.EventRatingShown]),
		ICloudClicks:   len(current[domain.EventICloudClick]),
		ConversionRate: ConversionRate(purchases.Total, stats.Visitors),
		Pageviews:      stats.Pageviews,
		BounceRate:     bounceRate(stats),
		AvgTime:        stats.AvgVisitTime(),
	}

	charts := domain.DashboardCharts{
		AppLaunches: DailyBuckets(current[domain.EventAppLaunch], window, s.loc),
		NewUsers:    DailyBuckets(current[domain.EventNewUser], window, s.loc),
		ActiveUsers: DailyBuckets(current[domain.EventDailyActive], window, s.loc),
		Purchases:   DailyBuckets(current[domain.EventPurchaseSuccess], window, s.loc),
	}

	breakdown := domain.DashboardBreakdown{
		AlarmTypes: []domain.NameValue{
			{Name: "add", Value: summary.AlarmsAdded},
			{Name: "edit", Value: summary.AlarmsEdited},
			{Name: "delete", Value: summary.AlarmsDeleted},
		},
		PurchaseClicks: purchaseClicks,
	}

	days := window.Days()

	return &domain.DashboardReport{
		Summary:   summary,
		Charts:    charts,
		Breakdown: breakdown,
		Range: domain.RangeInfo{
			StartAt: window.StartAt,
			EndAt:   window.EndAt,
			Days:    days,
			Label:   RangeLabel(rangeToken, days),
		},
	}
}

func bounceRate(stats *domain.SiteStats) int {
	if stats.Visits == 0 {
		return 0
	}
	return int(utils.RoundWithTwoDecimalPlace(float64(stats.Bounces) / float64(stats.Visits) * 100))
}

func (s *ReportingService) recordBuild(status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.DashboardBuildsTotal.WithLabelValues(status).Inc()
	s.metrics.DashboardBuildDuration.Observe(time.Since(start).Seconds())
}
