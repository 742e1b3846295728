package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/database/postgres"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/integrator/apify"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/integrator/apify/apifyclient"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/migration"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/internal/api"
	"github.com/vfg2006/creator-cpm-sync/internal/config"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/scheduler"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/authenticating"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/cpm"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/earnings"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/syncing"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/viral"
	"github.com/vfg2006/creator-cpm-sync/pkg/utils"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

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

	if cfg.Database.AutoMigrate {
		if err := migration.Apply(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar schema do banco")
		}
	}

	clock := utils.SystemClock{}

	postRepo := repository.NewPostRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	ledgerRepo := repository.NewCpmLedgerRepository(pgConn)

	authenticator := authenticating.NewService(cfg.Auth)

	apifyIntegrator := apify.New(cfg.Apify, apifyclient.NewClient(cfg.Apify))

	cpmSettings := domain.CpmSettings{
		Rate:           cfg.Cpm.Rate,
		WindowDays:     cfg.Cpm.WindowDays,
		PostCap:        cfg.Cpm.PostCap,
		UserMonthlyCap: cfg.Cpm.UserMonthlyCap,
	}

	cpmService, err := cpm.NewService(ledgerRepo, cpmSettings)
	if err != nil {
		logrus.WithError(err).Fatal("Configuração de CPM inválida")
	}

	viralDetector := viral.NewService(postRepo, clock)

	syncService := syncing.NewService(
		syncing.Settings{
			WindowDays:         cfg.Cpm.WindowDays,
			MaxConcurrentPosts: cfg.AnalyticsSync.MaxConcurrentPosts,
			PostTimeout:        cfg.AnalyticsSync.PostTimeout,
			RequestDelay:       time.Duration(cfg.AnalyticsSync.RequestDelaySeconds) * time.Second,
		},
		apifyIntegrator,
		postRepo,
		snapshotRepo,
		ledgerRepo,
		viralDetector,
		cpmService,
		clock,
	)

	analyticsSyncService := scheduler.NewAnalyticsSyncService(syncService, cfg)
	if err := analyticsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de analytics")
	} else {
		logrus.Info("Agendador de sincronização de analytics iniciado com sucesso")
	}

	earningsService := earnings.NewService(postRepo, snapshotRepo, ledgerRepo, cpmSettings)

	server, err := api.New(cfg, authenticator, analyticsSyncService, earningsService, apifyIntegrator)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
