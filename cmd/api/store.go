package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flulance/flulance-backend-go/internal/config"
	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/domain/commission"
	"github.com/flulance/flulance-backend-go/internal/domain/dashboard"
	"github.com/flulance/flulance-backend-go/internal/domain/identity"
	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/domain/match"
	"github.com/flulance/flulance-backend-go/internal/domain/notification"
	"github.com/flulance/flulance-backend-go/internal/fixtures"
	"github.com/flulance/flulance-backend-go/internal/pkg/database"
	"github.com/flulance/flulance-backend-go/internal/repository/memory"
	"github.com/flulance/flulance-backend-go/internal/repository/postgresql"
	"github.com/flulance/flulance-backend-go/migrations"
)

// repositories is the storage layer selected by STORE_DRIVER.
type repositories struct {
	tx           database.Transactor
	jobs         job.JobRepository
	applications application.ApplicationRepository
	briefs       brief.BriefRepository
	proposals    brief.ProposalRepository
	matches      match.MatchRepository
	messages     match.MessageRepository
	commission   commission.CommissionRepository
	dashboard    dashboard.DashboardRepository
	notification notification.Repository
	directory    identity.Directory
	close        func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case "memory":
		slog.Warn("Using the in-memory store; data is lost on restart")
		s := memory.NewStore()
		if cfg.Database.SeedDemo {
			slog.Info("Seeded demo accounts", "count", fixtures.SeedDemoAccounts(s))
		}
		return &repositories{
			tx:           s,
			jobs:         memory.NewJobRepository(s),
			applications: memory.NewApplicationRepository(s),
			briefs:       memory.NewBriefRepository(s),
			proposals:    memory.NewProposalRepository(s),
			matches:      memory.NewMatchRepository(s),
			messages:     memory.NewMessageRepository(s),
			commission:   memory.NewCommissionRepository(s),
			dashboard:    memory.NewDashboardRepository(s),
			notification: memory.NewNotificationRepository(s),
			directory:    memory.NewDirectory(s),
			close:        func() {},
		}, nil

	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migrations.Apply(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		return &repositories{
			tx:           db,
			jobs:         postgresql.NewJobRepository(db),
			applications: postgresql.NewApplicationRepository(db),
			briefs:       postgresql.NewBriefRepository(db),
			proposals:    postgresql.NewProposalRepository(db),
			matches:      postgresql.NewMatchRepository(db),
			messages:     postgresql.NewMessageRepository(db),
			commission:   postgresql.NewCommissionRepository(db),
			dashboard:    postgresql.NewDashboardRepository(db),
			notification: postgresql.NewNotificationRepository(db),
			directory:    postgresql.NewDirectory(db),
			close:        db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Database.Driver)
	}
}
