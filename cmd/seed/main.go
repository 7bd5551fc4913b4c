package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/turnoshq/roster-manager/backend/internal/config"
	"github.com/turnoshq/roster-manager/backend/internal/repository"
	"github.com/turnoshq/roster-manager/backend/internal/seed"
	"github.com/turnoshq/roster-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var coordinatorID int64
	var pool string

	flag.IntVar(&op, "op", 0, "operation (1: insert random coordinators, 2: insert random workers for a coordinator, 3: insert random reserve pool workers, 4: import the legacy roster CSV)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&coordinatorID, "coordinator-id", 0, "coordinator to attach the random workers to")
	flag.StringVar(&pool, "pool", "Legacy", "home pool for the random workers")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the network, so ping explicitly.
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of coordinators must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				coordinator, err := utils.GenerateRandomCoordinator(cfg.Seed.Coordinator.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("failed to generate coordinator", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateCoordinator(coordinator); err != nil {
					slog.Error("failed to insert coordinator", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("coordinators inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("number of workers must be positive")
			return
		}
		if coordinatorID <= 0 {
			slog.Error("a valid -coordinator-id is required")
			return
		}

		if _, err := repo.GetCoordinatorByID(coordinatorID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("coordinator does not exist", slog.Int64("coordinator_id", coordinatorID))
			default:
				slog.Error("failed to look up coordinator", slog.String("error", err.Error()))
			}
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			worker := utils.GenerateRandomWorker(pool, &coordinatorID)
			if err := repo.CreateWorker(worker); err != nil {
				slog.Error("failed to insert worker", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("workers inserted", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("number of workers must be positive")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			worker := utils.GenerateRandomWorker(pool, nil)
			if err := repo.CreateWorker(worker); err != nil {
				slog.Error("failed to insert reserve worker", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("reserve pool workers inserted", slog.Int("count", n-cnt), slog.String("pool", pool))
	case 4:
		seed.SeedLegacyRoster(repo, cfg)
	default:
		slog.Error("unknown operation")
	}
}
