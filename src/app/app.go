// Package app wires configuration, storage and broker clients into the
// services shared by the API, the worker and famctl.
package app

import (
	"context"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/clients/fundsindia"
	"famwealth/src/clients/hdfc"
	"famwealth/src/clients/icici"
	"famwealth/src/clients/zerodha"
	"famwealth/src/config"
	"famwealth/src/database"
	"famwealth/src/events"
	"famwealth/src/repositories"
	"famwealth/src/services"
	aws_handler "famwealth/src/utils/aws"
	redis_utils "famwealth/src/utils/redis"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const defaultSessionTTL = 24 * time.Hour

type Repositories struct {
	Members     repositories.FamilyMemberRepository
	Investments repositories.InvestmentRepository
	Liabilities repositories.LiabilityRepository
	Accounts    repositories.AccountRepository
	Reminders   repositories.ReminderRepository
	Holdings    repositories.HoldingRepository
	SyncLogs    repositories.SyncLogRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Members:     repositories.NewFamilyMemberRepository(db),
		Investments: repositories.NewInvestmentRepository(db),
		Liabilities: repositories.NewLiabilityRepository(db),
		Accounts:    repositories.NewAccountRepository(db),
		Reminders:   repositories.NewReminderRepository(db),
		Holdings:    repositories.NewHoldingRepository(db),
		SyncLogs:    repositories.NewSyncLogRepository(db),
	}
}

type App struct {
	Config       *config.Config
	Logger       *logrus.Logger
	DB           *pgxpool.Pool
	Redis        *redis_utils.RedisHandler
	Repositories *Repositories
	Registry     *brokers.Registry
	Engine       *services.ReconciliationService
	Family       *services.FamilyService
	Reminders    *services.ReminderService
	Brokers      *services.BrokerSyncService
	Dashboard    *services.DashboardService
	Export       *services.ExportService
}

// NewRegistry registers every supported broker.
func NewRegistry(cfg config.ExternalClientConfig) *brokers.Registry {
	return brokers.NewRegistry(
		zerodha.NewClient(cfg.Zerodha),
		hdfc.NewClient(cfg.HDFC),
		icici.NewClient(cfg.ICICI),
		fundsindia.NewClient(cfg.FundsIndia),
	)
}

// New connects to Postgres and, when configured, Redis and AWS Secrets
// Manager, then builds the services. publisher receives domain events; nil
// routes them to Redis when Redis is available and drops them otherwise.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger, publisher services.EventPublisher) (*App, error) {
	db, err := database.SetupDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Repositories: NewRepositories(db),
		Registry:     NewRegistry(cfg.ExternalClients),
	}

	var sessions services.SessionStore = services.NewMemorySessionStore()
	if cfg.Databases.Redis.Enabled() {
		a.Redis, err = redis_utils.NewRedisHandler(ctx, cfg.Databases.Redis)
		if err != nil {
			db.Close()
			return nil, err
		}
		sessions = services.NewRedisSessionStore(a.Redis)
		if publisher == nil {
			publisher = events.NewRedisPublisher(a.Redis)
		}
	} else {
		logger.Warn("redis is not configured, broker sessions are kept in memory")
	}

	secrets, err := aws_handler.LoadBrokerSecrets(ctx, cfg.Secrets)
	if err != nil {
		a.Close()
		return nil, err
	}

	mappings, err := services.MappingsFromConfig(cfg.Brokers.Mappings)
	if err != nil {
		a.Close()
		return nil, err
	}
	ttl := defaultSessionTTL
	if cfg.Brokers.SessionTTLHours > 0 {
		ttl = time.Duration(cfg.Brokers.SessionTTLHours) * time.Hour
	}

	r := a.Repositories
	a.Engine = services.NewReconciliationService(r.Holdings, r.SyncLogs, a.Registry)
	a.Family = services.NewFamilyService(r.Members, r.Investments, r.Liabilities, r.Accounts, r.Reminders, r.Holdings)
	a.Reminders = services.NewReminderService(r.Reminders, r.Investments, cfg.Scheduler.ReminderLeadDays, publisher)
	a.Brokers = services.NewBrokerSyncService(a.Registry, sessions, a.Engine, mappings, ttl, secrets, publisher)
	a.Dashboard = services.NewDashboardService(r.Members, r.Holdings, r.Investments, r.Liabilities, r.Accounts, r.Reminders)
	a.Export = services.NewExportService(a.Dashboard)
	return a, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	a.DB.Close()
}
