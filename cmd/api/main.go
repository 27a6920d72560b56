package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/echopie/alarmone-insights-api/infrastructure/database/postgres"
	"github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami"
	"github.com/echopie/alarmone-insights-api/infrastructure/integrator/umami/umamiclient"
	"github.com/echopie/alarmone-insights-api/infrastructure/repository"
	"github.com/echopie/alarmone-insights-api/internal/api"
	"github.com/echopie/alarmone-insights-api/internal/config"
	"github.com/echopie/alarmone-insights-api/internal/scheduler"
	"github.com/echopie/alarmone-insights-api/internal/usecases/authenticating"
	"github.com/echopie/alarmone-insights-api/internal/usecases/reporting"
	"github.com/echopie/alarmone-insights-api/pkg/metrics"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	dailyReportRepo := repository.NewDailyReportRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	m := metrics.New()

	// Cliente do Umami com credenciais cacheadas e renovação automática
	credentials := umamiclient.NewCredentialManager(cfg)
	umamiClient := umamiclient.NewClient(cfg, credentials, m)
	umamiIntegrator := umami.New(cfg, umamiClient)

	reportingService := reporting.NewReportingService(umamiIntegrator, m)

	// Inicializa o agendador de arquivamento de relatórios diários
	dailyReportSyncService := scheduler.NewDailyReportSyncService(
		reportingService,
		dailyReportRepo,
		m,
		cfg,
	)

	// Inicia o agendador em background
	if err := dailyReportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios diários")
	} else {
		logrus.Info("Agendador de relatórios diários iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		authenticator,
		dailyReportRepo,
		dailyReportSyncService,
		m,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
